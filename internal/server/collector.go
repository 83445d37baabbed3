package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basel-ax/reimagine/internal/domain"
)

const actionGenerate = "generate"

// collect reads the form of one UI event into a submission. A newly uploaded
// file replaces the session's upload before the submission is built, so it is
// echoed even when no generation follows.
func collect(c *gin.Context, sess *domain.Session) (domain.Submission, error) {
	prompt := c.PostForm("prompt")
	sess.SetPrompt(prompt)

	header, err := c.FormFile("image")
	switch {
	case err == nil:
		file, err := header.Open()
		if err != nil {
			return domain.Submission{}, fmt.Errorf("failed to open upload: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return domain.Submission{}, fmt.Errorf("failed to read upload: %w", err)
		}

		img, err := domain.DecodeInputImage(header.Filename, data)
		if err != nil {
			return domain.Submission{}, err
		}
		sess.SetUpload(img)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return domain.Submission{}, fmt.Errorf("failed to parse form: %w", err)
	}

	return domain.Submission{
		Image:             sess.Upload(),
		Prompt:            prompt,
		GenerateRequested: c.PostForm("action") == actionGenerate,
	}, nil
}
