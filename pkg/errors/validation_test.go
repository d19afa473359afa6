package errors

import (
	"math"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 1.5, false},
		{"tiny positive", 1e-9, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"NaN", math.NaN(), true},
		{"+Inf", math.Inf(1), true},
		{"-Inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("spacing", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%g) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("ValidatePositive(%g) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 2, false},
		{"zero", 0, false},
		{"negative", -0.1, true},
		{"NaN", math.NaN(), true},
		{"Inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("jitter", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative(%g) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	if err := ValidateCount("count", 0); err != nil {
		t.Errorf("ValidateCount(0) error = %v", err)
	}
	if err := ValidateCount("count", 10); err != nil {
		t.Errorf("ValidateCount(10) error = %v", err)
	}
	if err := ValidateCount("count", -1); !Is(err, ErrCodeInvalidArgument) {
		t.Errorf("ValidateCount(-1) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "windmills", false},
		{"with dash", "skeleton-arrow", false},
		{"with underscore", "Skeleton_Warrior", false},
		{"with space", "mountain rocks", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"slash", "trees/oak", true},
		{"backslash", `trees\oak`, true},
		{"traversal", "..trees", true},
		{"control char", "trees\x01", true},
		{"newline", "trees\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
