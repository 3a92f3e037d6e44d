package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"courtdesk/db"
	"courtdesk/middleware"
	"courtdesk/models"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const maxDocumentSize = 25 << 20 // 25 MB

// UploadCaseDocumentHandler attaches an uploaded file to a case
func UploadCaseDocumentHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	caseRecord, err := services.ResolveCase(db.DB, c.Param("ident"))
	if err != nil {
		return respondError(c, err)
	}

	// Lawyers may only upload to cases they represent
	if user.Role == models.RoleLawyer {
		if caseRecord.LawyerID == nil || *caseRecord.LawyerID != user.ID {
			return echo.NewHTTPError(http.StatusForbidden, "You are not assigned to this case")
		}
	}

	title := services.SanitizeText(c.FormValue("title"))

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}
	if file.Size > maxDocumentSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File exceeds the 25MB limit")
	}
	if title == "" {
		title = file.Filename
	}

	key := services.GenerateCaseDocumentKey(caseRecord.ID, file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store file")
	}

	document := models.CaseDocument{
		CaseID:           caseRecord.ID,
		Title:            title,
		FileKey:          result.Key,
		FileName:         result.FileName,
		FileOriginalName: result.FileOriginalName,
		FileSize:         result.FileSize,
		MimeType:         result.MimeType,
		UploadedByID:     user.ID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&document).Error; err != nil {
			return err
		}

		services.EnqueueTimeline(tx, services.TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Document uploaded",
			Description: fmt.Sprintf("%s uploaded %q", user.Name, title),
			Category:    "document",
			CreatedByID: user.ID,
		})
		services.EnqueueAudit(tx, services.AuditActor(user, models.AuditActionCreate, "document", document.ID, title))
		return nil
	})
	if err != nil {
		// Orphan cleanup, best effort
		_ = services.Storage.Delete(c.Request().Context(), result.Key)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save document record")
	}

	return c.JSON(http.StatusCreated, document)
}

// ListCaseDocumentsHandler lists a case's documents
func ListCaseDocumentsHandler(c echo.Context) error {
	caseRecord, err := services.ResolveCase(db.DB, c.Param("ident"))
	if err != nil {
		return respondError(c, err)
	}

	var documents []models.CaseDocument
	if err := db.DB.
		Preload("UploadedBy").
		Where("case_id = ?", caseRecord.ID).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch documents")
	}

	return c.JSON(http.StatusOK, documents)
}

// DownloadCaseDocumentHandler streams a document back to the client
func DownloadCaseDocumentHandler(c echo.Context) error {
	documentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid document ID")
	}

	var document models.CaseDocument
	if err := db.DB.First(&document, uint(documentID)).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), document.FileKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve file")
	}
	defer reader.Close()

	downloadName := document.FileOriginalName
	if downloadName == "" {
		downloadName = document.FileName
	}
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, downloadName))
	return c.Stream(http.StatusOK, contentType, reader)
}

// DeleteCaseDocumentHandler removes a document record and its stored file
func DeleteCaseDocumentHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	documentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid document ID")
	}

	var document models.CaseDocument
	if err := db.DB.First(&document, uint(documentID)).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}

	// Uploader or court staff may delete
	if document.UploadedByID != user.ID &&
		!user.HasRole(models.RoleAdmin, models.RoleCourtAdmin, models.RoleRegistrar, models.RoleJudge) {
		return echo.NewHTTPError(http.StatusForbidden, "You cannot delete this document")
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&document).Error; err != nil {
			return err
		}
		services.EnqueueAudit(tx, services.AuditActor(user, models.AuditActionDelete, "document", document.ID, document.Title))
		return nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete document")
	}

	if err := services.Storage.Delete(c.Request().Context(), document.FileKey); err != nil {
		c.Logger().Warnf("Failed to delete stored file %s: %v", document.FileKey, err)
	}

	return c.NoContent(http.StatusNoContent)
}
