package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mediashelf/internal/importer"
	"mediashelf/internal/library"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
	"mediashelf/internal/services"
)

func (s *Server) handleHealth(c *gin.Context) {
	resp := HealthResponse{Status: "ok"}
	if s.store != nil {
		resp.Database = s.store.Path()
	}
	if s.importer != nil {
		resp.ArtistCacheEntries = s.importer.Cache().Count()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("type"))
	results, err := s.importer.Search(c.Request.Context(), query, category)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SearchResponse{Query: query, Category: category, Results: results})
}

func (s *Server) handleImportPreview(c *gin.Context) {
	candidate, err := s.importer.Import(c.Request.Context(), c.Param("category"), c.Param("id"), media.Overrides{})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImportResponse{Candidate: candidate})
}

func (s *Server) handleImport(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	candidate, err := s.importer.Import(c.Request.Context(), c.Param("category"), c.Param("id"), req.Overrides)
	if err != nil {
		s.writeError(c, err)
		return
	}
	resp := ImportResponse{Candidate: candidate}
	if req.Save != nil && !*req.Save {
		c.JSON(http.StatusOK, resp)
		return
	}

	id, created, err := s.store.Save(c.Request.Context(), *candidate)
	if err != nil {
		s.writeError(c, err)
		return
	}
	resp.RecordID = id
	resp.Created = created
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

func (s *Server) handleList(c *gin.Context) {
	category, ok := s.categoryParam(c)
	if !ok {
		return
	}
	records, err := s.store.List(c.Request.Context(), category)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if records == nil {
		records = []library.Record{}
	}
	c.JSON(http.StatusOK, RecordListResponse{Category: string(category), Count: len(records), Records: records})
}

func (s *Server) handleGet(c *gin.Context) {
	category, ok := s.categoryParam(c)
	if !ok {
		return
	}
	record, err := s.store.Get(c.Request.Context(), category, c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "record not found"})
		return
	}
	c.JSON(http.StatusOK, RecordResponse{Record: record})
}

// handleUpdate applies the JSON body over the stored record, so fields absent
// from the body keep their values.
func (s *Server) handleUpdate(c *gin.Context) {
	category, ok := s.categoryParam(c)
	if !ok {
		return
	}
	id := c.Param("id")
	ctx := c.Request.Context()
	record, err := s.store.Get(ctx, category, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "record not found"})
		return
	}
	if err := c.ShouldBindJSON(record); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	record.ID = id
	record.Category = category
	if _, err := s.store.Update(ctx, category, id, *record); err != nil {
		s.writeError(c, err)
		return
	}
	updated, err := s.store.Get(ctx, category, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecordResponse{Record: updated})
}

func (s *Server) handleDelete(c *gin.Context) {
	category, ok := s.categoryParam(c)
	if !ok {
		return
	}
	deleted, err := s.store.Delete(c.Request.Context(), category, c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "record not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) categoryParam(c *gin.Context) (media.Category, bool) {
	category, err := media.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: string(importer.KindInvalidCategory)})
		return "", false
	}
	return category, true
}

// statusFor maps import failures by kind and everything else by its service
// marker.
func statusFor(err error) (int, string) {
	if importErr, ok := importer.AsImportError(err); ok {
		switch importErr.Kind {
		case importer.KindInvalidCategory, importer.KindInvalidID:
			return http.StatusBadRequest, importErr.ErrorKind()
		case importer.KindNotFound:
			return http.StatusNotFound, importErr.ErrorKind()
		default:
			return http.StatusBadGateway, importErr.ErrorKind()
		}
	}
	var kinded interface{ ErrorKind() string }
	kind := ""
	if errors.As(err, &kinded) {
		kind = kinded.ErrorKind()
	}
	return services.HTTPStatus(err), kind
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, kind := statusFor(err)
	logger := logging.WithContext(c.Request.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		logging.WarnWithContext(logger, "request failed", "api_request_failed",
			logging.String("path", c.FullPath()),
			logging.Int("status", status),
			logging.Error(err),
		)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Kind: kind})
}
