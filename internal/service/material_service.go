package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/repository"
	"remedial_edu_backend/internal/util"
	"remedial_edu_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MaterialService struct {
	Repo    *repository.MaterialRepository
	Storage StorageProvider
}

func NewMaterialService(repo *repository.MaterialRepository, storage StorageProvider) *MaterialService {
	return &MaterialService{Repo: repo, Storage: storage}
}

type MaterialUpload struct {
	Title           string
	Description     string
	SubjectID       *uint
	PhonemicLevelID *uint
	UploadedBy      uint
}

// Upload stores the file through the configured provider. Audio and video
// files are probed for playback duration first so the frontend can show it
// without fetching the object.
func (s *MaterialService) Upload(ctx context.Context, meta MaterialUpload, fh *multipart.FileHeader) (*model.LearningMaterial, error) {
	contentType := fh.Header.Get("Content-Type")
	key := fmt.Sprintf("materials/%s/%s%s",
		time.Now().Format("2006/01"), uuid.New().String(), filepath.Ext(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var duration float64
	var reader io.Reader = src
	if util.IsMediaContentType(contentType) {
		tmpPath, probed, err := probeUpload(src, filepath.Ext(fh.Filename))
		if err != nil {
			logger.Log.Warn("media probe failed, storing without duration", zap.Error(err))
			if _, err := src.Seek(0, io.SeekStart); err != nil {
				return nil, err
			}
		} else {
			defer os.Remove(tmpPath)
			duration = probed
			f, err := os.Open(tmpPath)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			reader = f
		}
	}

	url, err := s.Storage.Put(ctx, key, reader, fh.Size, contentType)
	if err != nil {
		return nil, err
	}

	m := &model.LearningMaterial{
		Title:           meta.Title,
		Description:     meta.Description,
		SubjectID:       meta.SubjectID,
		PhonemicLevelID: meta.PhonemicLevelID,
		ObjectKey:       key,
		URL:             url,
		ContentType:     contentType,
		SizeBytes:       fh.Size,
		DurationSeconds: duration,
		UploadedBy:      meta.UploadedBy,
	}
	if err := s.Repo.Create(m); err != nil {
		s.Storage.Remove(ctx, key)
		return nil, err
	}
	return m, nil
}

// probeUpload spools the upload to a temp file so ffprobe can read it by path.
func probeUpload(src io.Reader, ext string) (string, float64, error) {
	tmp, err := os.CreateTemp("", "material-*"+ext)
	if err != nil {
		return "", 0, err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", 0, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", 0, err
	}
	return tmp.Name(), util.ProbeMediaDuration(tmp.Name()), nil
}

func (s *MaterialService) Get(id uint) (*model.LearningMaterial, error) {
	return s.find(id)
}

func (s *MaterialService) List(subjectID, levelID uint, page, limit int) ([]model.LearningMaterial, int64, error) {
	return s.Repo.List(subjectID, levelID, page, limit)
}

func (s *MaterialService) Delete(ctx context.Context, id uint) error {
	m, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if err := s.Storage.Remove(ctx, m.ObjectKey); err != nil {
		logger.Log.Warn("failed to remove stored object",
			zap.String("key", m.ObjectKey), zap.Error(err))
	}
	return nil
}

func (s *MaterialService) find(id uint) (*model.LearningMaterial, error) {
	m, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrMaterialNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
