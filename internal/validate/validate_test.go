package validate

import (
	"errors"
	"testing"
	"time"
)

func fieldNames(t *testing.T, err error) map[string]int {
	t.Helper()

	var verrs *Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected *Errors, got %v", err)
	}

	names := make(map[string]int)
	for _, f := range verrs.Fields {
		names[f.Field]++
	}
	return names
}

func TestNewUserValid(t *testing.T) {
	input := NewUser{
		Username: "alice1",
		Password: "Secr3t!",
		Email:    "a@example.com",
		Birthday: "1990-05-01",
	}

	birthday, err := input.Validate()
	if err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if birthday == nil || !birthday.Equal(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected birthday %v", birthday)
	}
}

func TestNewUserOptionalBirthday(t *testing.T) {
	input := NewUser{Username: "alice1", Password: "pw", Email: "a@example.com"}

	birthday, err := input.Validate()
	if err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if birthday != nil {
		t.Fatalf("expected nil birthday, got %v", birthday)
	}
}

func TestNewUserReportsEveryViolation(t *testing.T) {
	input := NewUser{
		Username: "ab!",
		Password: "",
		Email:    "not-an-email",
		Birthday: "05/01/1990",
	}

	_, err := input.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	names := fieldNames(t, err)
	for _, field := range []string{"Username", "Password", "Email", "Birthday"} {
		if names[field] == 0 {
			t.Fatalf("expected a violation for %s, got %v", field, names)
		}
	}
	// "ab!" is both too short and non-alphanumeric.
	if names["Username"] != 2 {
		t.Fatalf("expected two username violations, got %d", names["Username"])
	}
}

func TestNewUserUsernameRules(t *testing.T) {
	cases := []struct {
		username string
		valid    bool
	}{
		{"alice1", true},
		{"ABCDE", true},
		{"12345", true},
		{"abcd", false},
		{"alice_1", false},
		{"alice 1", false},
		{"", false},
	}

	for _, tc := range cases {
		input := NewUser{Username: tc.username, Password: "pw", Email: "a@example.com"}
		_, err := input.Validate()
		if tc.valid && err != nil {
			t.Fatalf("expected %q to be valid, got %v", tc.username, err)
		}
		if !tc.valid && err == nil {
			t.Fatalf("expected %q to be rejected", tc.username)
		}
	}
}

func TestUserUpdateSkipsEmptyFields(t *testing.T) {
	birthday, err := UserUpdate{}.Validate()
	if err != nil {
		t.Fatalf("expected empty update to validate, got %v", err)
	}
	if birthday != nil {
		t.Fatalf("expected nil birthday, got %v", birthday)
	}
}

func TestUserUpdateValidatesProvidedFields(t *testing.T) {
	_, err := UserUpdate{Username: "ab", Email: "nope"}.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	names := fieldNames(t, err)
	if names["Username"] == 0 || names["Email"] == 0 {
		t.Fatalf("expected username and email violations, got %v", names)
	}
	if names["Password"] != 0 {
		t.Fatalf("password was not provided and must not be validated, got %v", names)
	}
}
