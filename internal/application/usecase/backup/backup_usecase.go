package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/pkg/logger"
)

const (
	backupFolder = "backups/profiles"
	pageSize     = 500
)

type BackupUseCase struct {
	store    profile.Store
	uploader service.Uploader
	logger   logger.Logger
	now      func() time.Time
}

func NewBackupUseCase(store profile.Store, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		store:    store,
		uploader: uploader,
		logger:   log,
		now:      time.Now,
	}
}

type Export struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Count       int                    `json:"count"`
	Profiles    []*profile.UserProfile `json:"profiles"`
}

type Result struct {
	URL      string
	PublicID string
	Count    int
}

// Execute dumps every profile as one JSON document and uploads it.
func (uc *BackupUseCase) Execute(ctx context.Context) (*Result, error) {
	uc.logger.Info("Starting profile export...")

	export := Export{GeneratedAt: uc.now().UTC(), Profiles: make([]*profile.UserProfile, 0)}
	for offset := 0; ; offset += pageSize {
		page, err := uc.store.List(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list profiles at offset %d: %w", offset, err)
		}
		export.Profiles = append(export.Profiles, page...)
		if len(page) < pageSize {
			break
		}
	}
	export.Count = len(export.Profiles)

	body, err := json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("marshal profile export: %w", err)
	}

	filename := fmt.Sprintf("profiles-%s.json", export.GeneratedAt.Format("2006-01-02_15-04-05"))
	uploadURL, err := uc.uploader.UploadRaw(ctx, bytes.NewReader(body), backupFolder, filename)
	if err != nil {
		uc.logger.Error("Failed to upload profile export to Cloudinary", err)
		return nil, err
	}

	publicID := backupFolder + "/" + filename
	uc.logger.Info("Profile export completed and uploaded successfully",
		zap.String("url", uploadURL),
		zap.String("public_id", publicID),
		zap.Int("profiles", export.Count),
	)
	return &Result{URL: uploadURL, PublicID: publicID, Count: export.Count}, nil
}
