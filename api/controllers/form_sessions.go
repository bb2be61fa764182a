package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stitchfold/admin-gateway/api/responses"
	"github.com/stitchfold/admin-gateway/api/validators"
	"github.com/stitchfold/admin-gateway/internal/forms"
	"github.com/stitchfold/admin-gateway/internal/wizard"
	"github.com/stitchfold/admin-gateway/pkg/config"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
	"github.com/stitchfold/admin-gateway/pkg/logger"
)

type createSessionRequest struct {
	ProductSlug string `json:"product_slug" validate:"omitempty,min=1"`
}

type updateFieldRequest struct {
	Field string          `json:"field" validate:"required"`
	Value json.RawMessage `json:"value" validate:"required"`
}

type jumpRequest struct {
	Step string `json:"step" validate:"required"`
}

// CreateFormSession opens a form session. An empty body starts a blank
// create-mode draft; a product_slug hydrates edit mode from the catalog.
func CreateFormSession(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createSessionRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		session, err := svc.CreateSession(r.Context(), payload.ProductSlug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

func GetFormSession(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := svc.GetSession(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

func CancelFormSession(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Cancel(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}

func UpdateFormField(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateFieldRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.UpdateField(r.Context(), sessionID, payload.Field, payload.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// UploadFormImages accepts multipart image files under the "images" key
// and stores them as pending attachments.
func UploadFormImages(svc *forms.Service, cfg config.FormConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		maxBody := cfg.MaxUploadBytes()*int64(cfg.MaxImages) + (1 << 20)
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		if err := r.ParseMultipartForm(cfg.MaxUploadBytes()); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		var files []forms.FileUpload
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded image"))
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded image"))
				return
			}
			files = append(files, forms.FileUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}

		session, err := svc.AddImages(r.Context(), sessionID, files)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// GetFormImage streams one pending upload, backing the preview URIs.
func GetFormImage(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attachmentID, err := uuid.Parse(chi.URLParam(r, "imageRef"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid attachment id"))
			return
		}

		attachment, err := svc.Attachment(r.Context(), sessionID, attachmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contentType := attachment.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(attachment.Data)
	}
}

// RemoveFormImage drops the preview at the given position and releases the
// stored attachment when it was a pending upload.
func RemoveFormImage(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		index, err := strconv.Atoi(chi.URLParam(r, "imageRef"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image index"))
			return
		}

		session, err := svc.RemoveImage(r.Context(), sessionID, index)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

func FormNext(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transitionHandler(logg, w, r, svc.Next)
	}
}

func FormPrevious(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transitionHandler(logg, w, r, svc.Previous)
	}
}

func FormJump(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload jumpRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		step, err := wizard.ParseStep(payload.Step)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid step"))
			return
		}

		session, err := svc.Jump(r.Context(), sessionID, step)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

func FormSubmit(svc *forms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Submit(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func transitionHandler(logg *logger.Logger, w http.ResponseWriter, r *http.Request, move func(context.Context, uuid.UUID) (*forms.Session, error)) {
	sessionID, err := sessionIDFromRequest(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	session, err := move(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, session)
}

func sessionIDFromRequest(r *http.Request) (uuid.UUID, error) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id")
	}
	return sessionID, nil
}
