package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "ayse@example.edu.tr", wantErr: false},
		{name: "valid with plus", email: "ayse+test@example.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing at", email: "ayse.example.com", wantErr: true},
		{name: "missing domain", email: "ayse@", wantErr: true},
		{name: "missing tld", email: "ayse@example", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "longenough", wantErr: false},
		{name: "exactly eight chars", password: "12345678", wantErr: false},
		{name: "too short", password: "1234567", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
	}{
		{name: "valid name", input: "Ayşe", wantErr: false},
		{name: "trimmed valid", input: "  Ayşe  ", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "single character", input: "A", wantErr: true},
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
