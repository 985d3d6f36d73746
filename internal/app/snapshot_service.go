package app

import (
	"encoding/json"
	"fmt"
	"time"

	"doppelkopf/internal/domain"

	"github.com/form3tech-oss/jwt-go"
)

// SnapshotTokenService wraps exported game snapshots in signed tokens so a
// saved game can travel through an untrusted client and be verified on
// import. Tokens are HS256-signed with a server-side secret.
type SnapshotTokenService struct {
	secret string
	issuer string
	ttl    time.Duration
}

// NewSnapshotTokenService constructs the service. A zero ttl defaults to
// 30 days, long enough to resume an abandoned learning session.
func NewSnapshotTokenService(secret, issuer string, ttl time.Duration) *SnapshotTokenService {
	if ttl == 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &SnapshotTokenService{secret: secret, issuer: issuer, ttl: ttl}
}

// Export serializes the game state and signs it into a token.
func (s *SnapshotTokenService) Export(game *domain.Game) (string, error) {
	if s == nil || s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("snapshot token config is incomplete")
	}
	if game == nil {
		return "", fmt.Errorf("game is required")
	}

	state, err := json.Marshal(game.ToData())
	if err != nil {
		return "", fmt.Errorf("failed to serialize game state: %w", err)
	}

	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"sub":   game.ID,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.ttl).Unix(),
		"state": string(state),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Import verifies a token and reconstructs the game it carries.
func (s *SnapshotTokenService) Import(tokenString string) (*domain.Game, error) {
	if s == nil || s.secret == "" {
		return nil, fmt.Errorf("snapshot token config is incomplete")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify snapshot token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("snapshot token claims are invalid")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return nil, fmt.Errorf("snapshot token issuer %q is not trusted", claims["iss"])
	}
	state, ok := claims["state"].(string)
	if !ok || state == "" {
		return nil, fmt.Errorf("snapshot token carries no state")
	}

	var data domain.GameStateData
	if err := json.Unmarshal([]byte(state), &data); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot state: %w", err)
	}
	return domain.GameFromData(&data)
}
