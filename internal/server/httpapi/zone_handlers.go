package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neogulmap/zonemap/internal/server/httpapi/errcode"
	"github.com/neogulmap/zonemap/internal/server/models"
	"github.com/neogulmap/zonemap/internal/server/services"
)

const maxMultipartMemory = 12 << 20

// zoneRequest is the JSON part of a zone create request.
type zoneRequest struct {
	Region      string  `json:"region"`
	Type        string  `json:"type"`
	Subtype     string  `json:"subtype"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Size        string  `json:"size"`
	Date        string  `json:"date"`
	Address     string  `json:"address"`
	User        string  `json:"user"`
}

// readMultipart extracts the JSON "data" part and the optional "image"
// file part from a multipart request.
func readMultipart(r *http.Request, into any) (*services.Upload, *errcode.Code) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, &errcode.InvalidFormat
	}

	data := r.FormValue("data")
	if data == "" {
		return nil, &errcode.RequiredFieldMissing
	}
	if err := json.Unmarshal([]byte(data), into); err != nil {
		return nil, &errcode.InvalidFormat
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		// image part is optional
		return nil, nil
	}
	if err != nil {
		return nil, &errcode.FileUploadError
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, &errcode.FileUploadError
	}

	return &services.Upload{
		Data:        bytes,
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func (h *Handler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var req zoneRequest
	upload, code := readMultipart(r, &req)
	if code != nil {
		WriteError(w, r, *code)
		return
	}

	if req.Region == "" || req.Address == "" {
		WriteError(w, r, errcode.RequiredFieldMissing)
		return
	}
	if !models.ValidLatitude(req.Latitude) {
		WriteError(w, r, errcode.LocationLatitudeInvalid)
		return
	}
	if !models.ValidLongitude(req.Longitude) {
		WriteError(w, r, errcode.LocationLongitudeInvalid)
		return
	}
	if !models.ValidZoneAddress(req.Address) {
		WriteError(w, r, errcode.ValidationError)
		return
	}

	date := time.Now().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			WriteError(w, r, errcode.InvalidFormat)
			return
		}
		date = parsed
	}

	zone := &models.Zone{
		Region:      req.Region,
		Type:        req.Type,
		Subtype:     req.Subtype,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Size:        req.Size,
		Date:        date,
		Address:     req.Address,
		User:        req.User,
	}

	created, err := h.zones.Create(r.Context(), zone, upload)
	if err != nil {
		h.writeZoneError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "zone created", created)
}

func (h *Handler) GetZone(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, errcode.InvalidFormat)
		return
	}

	zone, err := h.zones.Get(r.Context(), id)
	if err != nil {
		h.writeZoneError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "zone found", zone)
}

// ListZones serves GET /zones. An address parameter is an exact lookup,
// filter parameters run a search, a page parameter returns one page,
// otherwise the full set.
func (h *Handler) ListZones(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if address := q.Get("address"); address != "" {
		zone, err := h.zones.GetByAddress(r.Context(), address)
		if err != nil {
			h.writeZoneError(w, r, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "zone found", zone)
		return
	}

	filter, code := parseSearchFilter(q)
	if code != nil {
		WriteError(w, r, *code)
		return
	}

	if !filter.IsEmpty() {
		zones, err := h.zones.Search(r.Context(), filter)
		if err != nil {
			h.writeZoneError(w, r, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "zones found", zones)
		return
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			WriteError(w, r, errcode.InvalidFormat)
			return
		}
		size, _ := strconv.Atoi(q.Get("size"))

		result, err := h.zones.ListPage(r.Context(), page, size)
		if err != nil {
			h.writeZoneError(w, r, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "zones found", result)
		return
	}

	zones, err := h.zones.List(r.Context())
	if err != nil {
		h.writeZoneError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "zones found", zones)
}

// SearchZones serves GET /zones/search, which requires at least one
// filter parameter.
func (h *Handler) SearchZones(w http.ResponseWriter, r *http.Request) {
	filter, code := parseSearchFilter(r.URL.Query())
	if code != nil {
		WriteError(w, r, *code)
		return
	}

	if filter.IsEmpty() {
		WriteError(w, r, errcode.SearchParameterInvalid)
		return
	}

	zones, err := h.zones.Search(r.Context(), filter)
	if err != nil {
		h.writeZoneError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "zones found", zones)
}

func (h *Handler) UpdateZone(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, errcode.InvalidFormat)
		return
	}

	var upd models.ZoneUpdate
	upload, code := readMultipart(r, &upd)
	if code != nil {
		WriteError(w, r, *code)
		return
	}

	if upd.Latitude != nil && !models.ValidLatitude(*upd.Latitude) {
		WriteError(w, r, errcode.LocationLatitudeInvalid)
		return
	}
	if upd.Longitude != nil && !models.ValidLongitude(*upd.Longitude) {
		WriteError(w, r, errcode.LocationLongitudeInvalid)
		return
	}
	if upd.Address != nil && !models.ValidZoneAddress(*upd.Address) {
		WriteError(w, r, errcode.ValidationError)
		return
	}

	zone, err := h.zones.Update(r.Context(), id, upd, upload)
	if err != nil {
		h.writeZoneError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "zone updated", zone)
}

func (h *Handler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, errcode.InvalidFormat)
		return
	}

	if err := h.zones.Delete(r.Context(), id); err != nil {
		h.writeZoneError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "zone deleted", nil)
}
