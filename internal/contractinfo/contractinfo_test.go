package contractinfo

import (
	"testing"
)

func TestScanBytecode(t *testing.T) {
	tests := []struct {
		name             string
		code             []byte
		wantMint         bool
		wantRestrictions bool
	}{
		{
			name: "plain code",
			code: []byte{0x60, 0x80, 0x60, 0x40, 0x52},
		},
		{
			name:     "mint selector present",
			code:     append([]byte{0x60, 0x80}, append(selectorMint, 0x00)...),
			wantMint: true,
		},
		{
			name:             "blacklist selector present",
			code:             append([]byte{0x60, 0x80}, selectorBlacklist...),
			wantRestrictions: true,
		},
		{
			name:             "pause selector present",
			code:             append(selectorPause, 0x56),
			wantRestrictions: true,
		},
		{
			name:             "mint and pause",
			code:             append(append([]byte{}, selectorMint...), selectorPause...),
			wantMint:         true,
			wantRestrictions: true,
		},
		{
			name: "empty code",
			code: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report := scanBytecode(tc.code)
			if report.MintFunction != tc.wantMint {
				t.Errorf("MintFunction = %v, want %v", report.MintFunction, tc.wantMint)
			}
			if report.TransferRestrictions != tc.wantRestrictions {
				t.Errorf("TransferRestrictions = %v, want %v", report.TransferRestrictions, tc.wantRestrictions)
			}
		})
	}
}

func TestContainsSelector(t *testing.T) {
	code := append([]byte{0x63}, selectorMint...)
	if !containsSelector(code, selectorMint) {
		t.Error("expected selector to be found")
	}
	if containsSelector([]byte{0x00, 0x01}, selectorMint) {
		t.Error("did not expect selector in unrelated bytes")
	}
}

func TestAnalyzeUnknownChain(t *testing.T) {
	a := New(map[int64]string{}, nil)
	defer a.Close()

	_, err := a.Analyze(t.Context(), "0x1111111111111111111111111111111111111111", 999)
	if err == nil {
		t.Fatal("expected error for unconfigured chain")
	}
}
