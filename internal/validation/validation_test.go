package validation

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsValidEthAddress(t *testing.T) {
	tests := []struct {
		addr  string
		valid bool
	}{
		{"0x1234567890123456789012345678901234567890", true},
		{"0xabcdefABCDEF1234567890123456789012345678", true},
		{"0x0000000000000000000000000000000000000000", true},

		// Invalid cases
		{"1234567890123456789012345678901234567890", false},     // No 0x
		{"0x12345678901234567890123456789012345678", false},     // Too short
		{"0x123456789012345678901234567890123456789012", false}, // Too long
		{"0xGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGG", false},   // Invalid chars
		{"", false},
		{"0x", false},
	}

	for _, tc := range tests {
		result := IsValidEthAddress(tc.addr)
		if result != tc.valid {
			t.Errorf("IsValidEthAddress(%q) = %v, want %v", tc.addr, result, tc.valid)
		}
	}
}

func TestSanitizeAddress(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0x1234567890123456789012345678901234567890", "0x1234567890123456789012345678901234567890"},
		{"0xABCDEF1234567890123456789012345678901234", "0xabcdef1234567890123456789012345678901234"},
		{"  0x1234567890123456789012345678901234567890  ", "0x1234567890123456789012345678901234567890"},
		{"1234567890123456789012345678901234567890", "0x1234567890123456789012345678901234567890"},
	}

	for _, tc := range tests {
		result := SanitizeAddress(tc.input)
		if result != tc.expected {
			t.Errorf("SanitizeAddress(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"hello", 10, "hello"},
		{"  hello  ", 10, "hello"},
		{"hello world", 5, "hello"},
		{"hello\x00world", 20, "helloworld"},
	}

	for _, tc := range tests {
		result := SanitizeString(tc.input, tc.maxLen)
		if result != tc.expected {
			t.Errorf("SanitizeString(%q, %d) = %q, want %q", tc.input, tc.maxLen, result, tc.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	// Test valid input
	errors := Validate(
		Required("name", "USDT"),
		ValidAddress("address", "0x1234567890123456789012345678901234567890"),
		ValidChainID("chainId", "1"),
	)
	if len(errors) != 0 {
		t.Errorf("Expected no errors, got %v", errors)
	}

	// Test invalid input
	errors = Validate(
		Required("name", ""),
		ValidAddress("address", "invalid"),
	)
	if len(errors) != 2 {
		t.Errorf("Expected 2 errors, got %d", len(errors))
	}
}

func TestValidChainID(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"1", true},
		{"137", true},
		{"42161", true},
		{"", true}, // optional; combine with Required when mandatory

		// Invalid
		{"0", false},
		{"-1", false},
		{"abc", false},
		{"1.5", false},
	}

	for _, tc := range tests {
		err := ValidChainID("chainId", tc.value)()
		valid := err == nil
		if valid != tc.valid {
			t.Errorf("ValidChainID(%q) valid=%v, want %v", tc.value, valid, tc.valid)
		}
	}
}

func TestChainParamMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/chains/:chainId", ChainParamMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"chainId": c.GetInt64("chainId")})
	})

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/chains/1", http.StatusOK},
		{"/chains/42161", http.StatusOK},
		{"/chains/0", http.StatusBadRequest},
		{"/chains/-5", http.StatusBadRequest},
		{"/chains/ethereum", http.StatusBadRequest},
	}

	for _, tc := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", tc.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != tc.wantStatus {
			t.Errorf("GET %s = %d, want %d", tc.path, w.Code, tc.wantStatus)
		}
	}
}

func TestAddressParamMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tokens/:address", AddressParamMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/tokens/0x1234567890123456789012345678901234567890", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Valid address rejected: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/tokens/nonsense", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Malformed address accepted: %d", w.Code)
	}
}
