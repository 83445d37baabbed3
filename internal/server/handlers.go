package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/basel-ax/reimagine/internal/domain"
)

const (
	noticeNoImage = "The model returned no image."
	pageTitle     = "IMAGE GENERATION APP"
)

type indexPage struct {
	Title          string
	Prompt         string
	HasUpload      bool
	UploadFilename string
	HasGenerated   bool
	Version        int
	Notice         string
	Error          string
}

func (srv *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (srv *Server) index(c *gin.Context) {
	sess := sessionFrom(c)
	sess.Lock()
	defer sess.Unlock()

	srv.render(c, http.StatusOK, sess, "")
}

// submit handles one UI event: an upload, a generate request, or both
func (srv *Server) submit(c *gin.Context) {
	sess := sessionFrom(c)
	sess.Lock()
	defer sess.Unlock()

	sub, err := collect(c, sess)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, domain.ErrUnsupportedFormat) || errors.Is(err, domain.ErrUndecodableImage) {
			srv.render(c, http.StatusBadRequest, sess, "Upload rejected: "+err.Error())
			return
		}
		srv.render(c, http.StatusBadRequest, sess, err.Error())
		return
	}

	result, err := srv.generator.Generate(c.Request.Context(), sess, sub)
	if err != nil {
		_ = c.Error(err)
		srv.render(c, http.StatusBadGateway, sess, describeGenerationError(err))
		return
	}

	if result.Outcome == domain.OutcomeNoImage {
		sess.SetNotice(noticeNoImage)
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (srv *Server) uploaded(c *gin.Context) {
	sess := sessionFrom(c)
	sess.Lock()
	upload := sess.Upload()
	sess.Unlock()

	if upload == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, upload.MIMEType, upload.Data)
}

func (srv *Server) generated(c *gin.Context) {
	srv.servePNG(c, false)
}

func (srv *Server) download(c *gin.Context) {
	srv.servePNG(c, true)
}

// servePNG serializes the display slot to PNG, as an attachment when requested
func (srv *Server) servePNG(c *gin.Context, attachment bool) {
	sess := sessionFrom(c)
	sess.Lock()
	img := sess.Generated()
	sess.Unlock()

	if img == nil {
		_ = c.Error(domain.ErrEmptySlot)
		c.Status(http.StatusNotFound)
		return
	}

	data, err := domain.EncodePNG(img.Image)
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if attachment {
		c.Header("Content-Disposition", `attachment; filename="`+domain.DownloadFilename+`"`)
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, domain.DownloadMIMEType, data)
}

func (srv *Server) render(c *gin.Context, status int, sess *domain.Session, errMsg string) {
	page := indexPage{
		Title:        pageTitle,
		Prompt:       sess.Prompt(),
		HasGenerated: sess.Generated() != nil,
		Version:      sess.Version(),
		Notice:       sess.TakeNotice(),
		Error:        errMsg,
	}
	if upload := sess.Upload(); upload != nil {
		page.HasUpload = true
		page.UploadFilename = upload.Filename
	}

	srv.logger.Debug("render page",
		zap.String("session_id", sess.ID),
		zap.Bool("has_upload", page.HasUpload),
		zap.Bool("has_generated", page.HasGenerated),
	)
	c.HTML(status, "index.html", page)
}

func describeGenerationError(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		return "Generation failed: the API key was rejected. Check GOOGLE_API_KEY."
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "Generation failed: the API quota is exhausted. Try again later."
	case errors.Is(err, domain.ErrUndecodableImage):
		return "Generation failed: the returned image could not be decoded."
	default:
		return "Generation failed: " + err.Error()
	}
}
