package tokens

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/codebin/codebin/internal/config"
	"github.com/codebin/codebin/internal/models"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	return cfg
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	cfg := testConfig("test-secret-32-bytes-should-be-long")
	u := &models.User{ID: "user-123", Role: models.RoleUser}

	raw, err := Issue(cfg, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := Verify(cfg, raw)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID() != u.ID {
		t.Fatalf("unexpected subject: got=%s want=%s", claims.UserID(), u.ID)
	}
	if claims.Role != models.RoleUser {
		t.Fatalf("unexpected role claim: %s", claims.Role)
	}
}

func TestVerify_Expired(t *testing.T) {
	cfg := testConfig("another-secret-32-bytes-longgggg")
	u := &models.User{ID: "u2", Role: models.RoleUser}
	raw, err := Issue(cfg, u, -1*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	_, err = Verify(cfg, raw)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	cfg := testConfig("secret-one-32-bytes-xxxxxxxxxxxx")
	u := &models.User{ID: "u3", Role: models.RoleUser}
	raw, err := Issue(cfg, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	_, err = Verify(testConfig("different-secret-xxxxxxxxxxxxxxx"), raw)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	cfg := testConfig("x")
	_, err := Verify(cfg, "not.a.jwt")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func encodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	headerEnc := encodeSegment([]byte(`{"alg":"none"}`))
	payloadEnc := encodeSegment([]byte(`{"sub":"u-none","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	_, err := Verify(testConfig("x"), tok)
	if err == nil {
		t.Fatal("expected alg=none token to be rejected")
	}
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	cfg := testConfig("tamper-test-secret-32-bytes-xxxx")
	u := &models.User{ID: "user-t", Role: models.RoleUser}
	raw, err := Issue(cfg, u, 5*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	payload := strings.Replace(string(payloadBytes), "user-t", "attacker", 1)
	parts[1] = encodeSegment([]byte(payload))
	_, err = Verify(cfg, strings.Join(parts, "."))
	if err == nil {
		t.Fatal("expected verification to fail for tampered token")
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	cfg := testConfig("no-subject-secret-32-bytes-xxxxx")
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	_, err = Verify(cfg, raw)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for missing sub, got %v", err)
	}
}
