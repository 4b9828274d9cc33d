package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"net/http"

	"github.com/hadiajavedd/SaySoPrototype/internal/config"
	"github.com/hadiajavedd/SaySoPrototype/internal/repository"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// qrImageSize is the pixel size of the generated share QR code.
const qrImageSize = 256

type ShareHandler struct {
	log *zap.Logger
}

func NewShareHandler(log *zap.Logger) *ShareHandler {
	return &ShareHandler{log: log}
}

// ShowSharePage renders the public take link for a questionnaire along with
// a scannable QR code, inlined as base64 PNG.
func (h *ShareHandler) ShowSharePage(c *gin.Context) {
	user, exists := currentUser(c)
	if !exists {
		c.Redirect(http.StatusFound, "/")
		return
	}
	id, valid := parseID(c)
	if !valid {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return
	}

	q, err := repository.GetOwnedQuestionnaire(c.Request.Context(), id, user.ID)
	if err != nil {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return
	}

	shareURL := takeURL(c, q.ID)
	qrBase64, err := encodeQR(shareURL)
	if err != nil {
		h.log.Error("Failed to generate QR code", zap.Error(err), zap.String("url", shareURL))
		c.String(http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	c.HTML(http.StatusOK, "share_questionnaire.html", gin.H{
		"Title":    q.Title,
		"ShareURL": shareURL,
		"QRCode":   qrBase64,
	})
}

// takeURL builds the absolute public URL of the take page, preferring the
// configured base URL over the incoming request's host.
func takeURL(c *gin.Context, id uint) string {
	base := config.Conf.Server.BaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
	}
	return fmt.Sprintf("%s/take-questionnaire/%d", base, id)
}

// encodeQR renders the URL as a PNG QR code and returns it base64-encoded
// for embedding in an <img> tag.
func encodeQR(url string) (string, error) {
	code, err := qr.Encode(url, qr.M, qr.Auto)
	if err != nil {
		return "", err
	}
	code, err = barcode.Scale(code, qrImageSize, qrImageSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
