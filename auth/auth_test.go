package auth

import (
	"forum-lab/errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "MyPasswordIsTr0pSafe!"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("WrongPassword", hash)
	req.NoError(err)
	req.False(match)
}

func TestCompare_Malformed_Hash(t *testing.T) {
	req := require.New(t)

	_, err := ComparePassword("whatever", "not-a-hash")
	req.Error(err)

	_, err = ComparePassword("whatever", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
	req.Error(err)
}

func TestRegistrationValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"Valid request", RegisterRequest{"test@example.com", "ComplexPass123!", "tester"}, false},
		{"Invalid email", RegisterRequest{"notanemail", "ComplexPass123!", "tester"}, true},
		{"Password too short", RegisterRequest{"test@example.com", "Short1!", "tester"}, true},
		{"Missing digit", RegisterRequest{"test@example.com", "NoDigitPass!", "tester"}, true},
		{"Missing special char", RegisterRequest{"test@example.com", "NoSpecialChar123", "tester"}, true},
		{"Missing uppercase", RegisterRequest{"test@example.com", "nouppercase123!", "tester"}, true},
		{"Password too long", RegisterRequest{"test@example.com", strings.Repeat("a", 73), "tester"}, true},
		{"Missing username", RegisterRequest{"test@example.com", "ComplexPass123!", ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := ValidateRegister(tt.req)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}

func TestRegistrationValidation_Error_Kinds(t *testing.T) {
	req := require.New(t)

	err := ValidateRegister(RegisterRequest{"test@example.com", "Short1!", "tester"})
	req.ErrorIs(err, errors.ErrInvalidPassword)

	err = ValidateRegister(RegisterRequest{"test@example.com", "nouppercase123!", "tester"})
	req.ErrorIs(err, errors.ErrInvalidPassword)

	err = ValidateRegister(RegisterRequest{"notanemail", "ComplexPass123!", "tester"})
	req.ErrorIs(err, errors.ErrInvalidRequest)
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("A-very-long-and-complex-password-for-bench-123!")
	}
}
