package service

import (
	"github.com/sefazor/crowdfunding-backend/internal/i18n"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"go.uber.org/zap"
)

// RequestContext carries the per-request session, translator and logger.
// Session is nil for anonymous callers.
type RequestContext struct {
	Session    *models.SessionUser
	Translator i18n.Translator
	Logger     *zap.Logger
}

func (rc *RequestContext) logger() *zap.Logger {
	if rc == nil || rc.Logger == nil {
		return zap.NewNop()
	}
	return rc.Logger
}

func (rc *RequestContext) session() *models.SessionUser {
	if rc == nil {
		return nil
	}
	return rc.Session
}
