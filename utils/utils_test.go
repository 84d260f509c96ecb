package utils

import (
	"testing"

	"parking-management/constants"
	userModel "parking-management/models/user"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hashed == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hashed, "s3cret-password") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hashed, "wrong-password") {
		t.Fatal("expected wrong password to be rejected")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	account := &userModel.User{
		ID:       42,
		Uuid:     "d94f0a3e-6b1f-4c49-9c1a-60e4c2fd5ad1",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     constants.RoleAdmin,
	}

	tokenString, err := GenerateToken(account)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	id, uuid, username, role, err := ClaimsToIdentity(claims)
	if err != nil {
		t.Fatalf("failed to extract identity: %v", err)
	}
	if id != 42 || uuid != account.Uuid || username != "alice" || role != constants.RoleAdmin {
		t.Fatalf("unexpected identity: id=%d uuid=%s username=%s role=%s", id, uuid, username, role)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	account := &userModel.User{ID: 1, Username: "alice", Role: constants.RoleUser}
	tokenString, err := GenerateToken(account)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	t.Setenv("JWT_SECRET", "another-secret")
	if _, err := ParseToken(tokenString); err == nil {
		t.Fatal("expected token signed with old secret to be rejected")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}

func TestClaimsToIdentity_UnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	account := &userModel.User{ID: 7, Username: "mallory", Role: constants.RoleUser}
	tokenString, err := GenerateToken(account)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	claims["role"] = "superadmin"

	if _, _, _, _, err := ClaimsToIdentity(claims); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
}
