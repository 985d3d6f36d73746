package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"doppelkopf/internal/app"
	"doppelkopf/internal/domain"
	"doppelkopf/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const snapshotIssuer = "doppelkopf-server"

// ExportSnapshotResponse carries the signed saved-game token.
type ExportSnapshotResponse struct {
	Token string `json:"token"`
}

// ImportSnapshotRequest carries a token produced by export_snapshot.
type ImportSnapshotRequest struct {
	Token string `json:"token"`
}

func snapshotTokenService(ctx context.Context) (*app.SnapshotTokenService, error) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["doppelkopf_snapshot_secret"]
	if secret == "" {
		return nil, errors.New("doppelkopf_snapshot_secret is not configured")
	}
	return app.NewSnapshotTokenService(secret, snapshotIssuer, 30*24*time.Hour), nil
}

// rpcExportSnapshot signs the caller's saved game so it can move between
// devices or installs.
func rpcExportSnapshot(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errors.New("no user in context")
	}

	tokens, err := snapshotTokenService(ctx)
	if err != nil {
		logger.Error("rpcExportSnapshot: %v", err)
		return "", err
	}

	store := NewNakamaSnapshotStore(nk)
	data, err := store.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrNoSnapshot) {
			return "", errors.New("no saved game to export")
		}
		logger.Error("rpcExportSnapshot: Failed to load snapshot for %s: %v", userID, err)
		return "", err
	}

	game, err := domain.GameFromData(data)
	if err != nil {
		logger.Error("rpcExportSnapshot: Stored snapshot for %s is corrupt: %v", userID, err)
		return "", fmt.Errorf("stored snapshot is corrupt: %w", err)
	}

	token, err := tokens.Export(game)
	if err != nil {
		logger.Error("rpcExportSnapshot: Failed to sign snapshot for %s: %v", userID, err)
		return "", err
	}

	b, _ := json.Marshal(ExportSnapshotResponse{Token: token})
	return string(b), nil
}

// rpcImportSnapshot verifies a token and installs it as the caller's
// saved game.
func rpcImportSnapshot(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errors.New("no user in context")
	}

	var request ImportSnapshotRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		return "", fmt.Errorf("invalid request: %w", err)
	}
	if request.Token == "" {
		return "", errors.New("token is required")
	}

	tokens, err := snapshotTokenService(ctx)
	if err != nil {
		logger.Error("rpcImportSnapshot: %v", err)
		return "", err
	}

	game, err := tokens.Import(request.Token)
	if err != nil {
		logger.Warn("rpcImportSnapshot: Rejected token from %s: %v", userID, err)
		return "", fmt.Errorf("invalid snapshot token: %w", err)
	}

	store := NewNakamaSnapshotStore(nk)
	if err := store.Save(ctx, userID, game.ToData()); err != nil {
		logger.Error("rpcImportSnapshot: Failed to save snapshot for %s: %v", userID, err)
		return "", err
	}

	return `{"ok":true}`, nil
}
