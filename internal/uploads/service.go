package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/kosherspect/kosherspect-backend/pkg/config"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
)

// Kind selects the validation profile for a batch of uploaded files.
type Kind string

const (
	KindPhotos    Kind = "photos"
	KindDocuments Kind = "documents"
)

// Service stores multipart uploads on disk and hands back their public paths.
type Service interface {
	Save(ctx context.Context, kind Kind, files []*multipart.FileHeader) ([]string, error)
}

type service struct {
	dir          string
	publicPrefix string
	maxFileBytes int64
	maxFiles     map[Kind]int
}

// NewService prepares the upload directory and returns a disk-backed service.
func NewService(cfg config.UploadsConfig) (Service, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("upload directory required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &service{
		dir:          cfg.Dir,
		publicPrefix: strings.TrimSuffix(cfg.PublicPrefix, "/"),
		maxFileBytes: cfg.MaxFileBytes,
		maxFiles: map[Kind]int{
			KindPhotos:    cfg.MaxPhotoFiles,
			KindDocuments: cfg.MaxDocumentFiles,
		},
	}, nil
}

// Save validates and persists a batch. Files are written under random UUID
// names so client-supplied names never reach the filesystem; returned paths
// preserve submission order.
func (s *service) Save(ctx context.Context, kind Kind, files []*multipart.FileHeader) ([]string, error) {
	limit, ok := s.maxFiles[kind]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown upload kind")
	}
	if len(files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUpload, "no files provided")
	}
	if len(files) > limit {
		return nil, pkgerrors.New(pkgerrors.CodeUpload, "too many files").
			WithDetails(map[string]any{"max": limit, "got": len(files)})
	}

	paths := make([]string, 0, len(files))
	written := make([]string, 0, len(files))
	for _, header := range files {
		select {
		case <-ctx.Done():
			s.removeAll(written)
			return nil, ctx.Err()
		default:
		}
		path, name, err := s.saveOne(kind, header)
		if err != nil {
			s.removeAll(written)
			return nil, err
		}
		paths = append(paths, path)
		written = append(written, name)
	}
	return paths, nil
}

func (s *service) saveOne(kind Kind, header *multipart.FileHeader) (string, string, error) {
	if header.Size > s.maxFileBytes {
		return "", "", pkgerrors.New(pkgerrors.CodeUpload, "file too large").
			WithDetails(map[string]any{"file": header.Filename, "maxBytes": s.maxFileBytes})
	}

	src, err := header.Open()
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeUpload, err, "open uploaded file")
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeUpload, err, "sniff uploaded file")
	}
	if !allowed(kind, mtype) {
		return "", "", pkgerrors.New(pkgerrors.CodeUpload, "unsupported file type").
			WithDetails(map[string]any{"file": header.Filename, "detected": mtype.String()})
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeUpload, err, "rewind uploaded file")
	}

	name := uuid.NewString() + fileExtension(header.Filename, mtype)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxFileBytes)); err != nil {
		os.Remove(dst.Name())
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write upload file")
	}
	return s.publicPrefix + "/" + name, name, nil
}

func (s *service) removeAll(names []string) {
	for _, name := range names {
		os.Remove(filepath.Join(s.dir, name))
	}
}

// allowed sniffs content, not client headers: photos accept any image,
// documents additionally accept PDFs.
func allowed(kind Kind, mtype *mimetype.MIME) bool {
	isImage := strings.HasPrefix(mtype.String(), "image/")
	switch kind {
	case KindPhotos:
		return isImage
	case KindDocuments:
		return isImage || mtype.Is("application/pdf")
	default:
		return false
	}
}

// fileExtension keeps the client extension when it looks sane, otherwise
// falls back to the extension implied by the detected type.
func fileExtension(original string, mtype *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if ext != "" && len(ext) <= 8 && !strings.ContainsAny(ext[1:], `\/.:`) {
		return ext
	}
	return mtype.Extension()
}
