package validator

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/designdesk/session-gateway/internal/config"
	"github.com/designdesk/session-gateway/internal/entity"
)

// Validator validates user input before anything touches the network.
type Validator struct {
	cfg config.UploadConfig
}

func NewValidator(cfg config.UploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateSubmitMessage rejects empty chat messages.
func (v *Validator) ValidateSubmitMessage(req *entity.SubmitMessageRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message", entity.ErrEmptyMessage)
	}
	return nil
}

// ValidateSubmitDraft checks the fields required for a one-shot create.
// Field-specific errors, no network call happens on failure.
func (v *Validator) ValidateSubmitDraft(draft *entity.RequirementDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("%w: title", entity.ErrMissingField)
	}
	if draft.DesignerID == nil {
		return fmt.Errorf("%w: designer_id", entity.ErrMissingField)
	}
	return nil
}

// ValidateImageCount rejects uploads past the per-session cap.
func (v *Validator) ValidateImageCount(current int) error {
	if current >= v.cfg.MaxImages {
		return fmt.Errorf("%w: at most %d reference images", entity.ErrInvalidParameter, v.cfg.MaxImages)
	}
	return nil
}

// ValidateReferenceImage enforces the upload constraints: MIME type must be an
// image and the file must be strictly under the size limit. Rejected files are
// excluded from the upload list, not queued or retried.
func (v *Validator) ValidateReferenceImage(fh *multipart.FileHeader) error {
	if fh == nil {
		return entity.ErrMissingField
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: content type %q", entity.ErrNotAnImage, contentType)
	}

	if fh.Size >= v.cfg.MaxImageSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (limit %d)", entity.ErrImageTooLarge, fh.Filename, fh.Size, v.cfg.MaxImageSize)
	}

	return nil
}
