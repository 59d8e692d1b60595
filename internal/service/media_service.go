package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
	"github.com/jaydeadlondon/mini-twitter/internal/models"
	"github.com/jaydeadlondon/mini-twitter/internal/repository"
	"github.com/jaydeadlondon/mini-twitter/internal/storage"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*transfer.MediaResponse, error)
}

type mediaService struct {
	mr repository.MediaRepository
	bs storage.BlobStore
}

func NewMediaService(mr repository.MediaRepository, bs storage.BlobStore) MediaService {
	return &mediaService{
		mr: mr,
		bs: bs,
	}
}

var allowedMediaTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {}, "gif": {},
}

// Upload stages a media record: the bytes go to blob storage under a
// generated name, the row starts out with no owning post. The write is
// synchronous; the response URL is the stable access path.
func (s *mediaService) Upload(ctx context.Context, file *multipart.FileHeader) (*transfer.MediaResponse, error) {
	fileContent, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		err = apperrors.InvalidOperation("unsupported file type")
		slog.Info(err.Error())
		return nil, err
	}
	if _, ok := allowedMediaTypes[fileType.Extension]; !ok {
		err = apperrors.InvalidOperation("file type %s is not allowed", fileType.Extension)
		slog.Info(err.Error())
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	filename := fmt.Sprintf("%s.%s", id, fileType.Extension)

	if err := s.bs.Save(ctx, filename, fileBytes, fileType.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	media := models.Media{
		FilePath: "uploaded_files/" + filename,
		FileName: filename,
	}

	mediaID, err := s.mr.Create(ctx, &media)
	if err != nil {
		return nil, err
	}

	return &transfer.MediaResponse{
		ID:  mediaID,
		URL: s.bs.URL(filename),
	}, nil
}
