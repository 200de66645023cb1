package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/akosarev/taskvault/internal/common"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := IssueToken(userID, common.AccessIntentAuth, secret)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	gotUserID, gotAccess, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
	if gotAccess != common.AccessIntentAuth {
		t.Fatalf("access mismatch: got %q want %q", gotAccess, common.AccessIntentAuth)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("u2", common.AccessIntentAuth, []byte("right-secret"))
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, _, err = ParseToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_TamperedSignature(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := IssueToken("u3", common.AccessIntentAuth, secret)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	// Flip a character in the middle of the signature segment. The final
	// base64url character only contributes 4 significant bits, so mutating it
	// can leave the decoded signature unchanged; a middle character always
	// carries 6 significant bits and must alter the decoded bytes.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	sig := []byte(parts[2])
	mid := len(sig) / 2
	if sig[mid] == 'A' {
		sig[mid] = 'B'
	} else {
		sig[mid] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, _, err = ParseToken(tampered, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, _, err := ParseToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestIssueToken_DistinctPerCall(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	first, err := IssueToken("u5", common.AccessIntentAuth, secret)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	second, err := IssueToken("u5", common.AccessIntentAuth, secret)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if first == second {
		t.Fatalf("two issued tokens are identical; sessions would collide")
	}
}

func TestIssueToken_NoExpiryClaim(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("u4", common.AccessIntentAuth, []byte("k"))
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	// payload is the middle segment; a token without expiry must not carry "exp"
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("payload decode error: %v", err)
	}
	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		t.Fatalf("payload unmarshal error: %v", err)
	}
	if _, ok := claims["exp"]; ok {
		t.Fatalf("token payload unexpectedly carries an expiry claim")
	}
}
