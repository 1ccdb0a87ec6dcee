package overtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/klokku/overtime/internal/rest"
	"github.com/klokku/overtime/pkg/contract"
	"github.com/klokku/overtime/pkg/timesheet"
	log "github.com/sirupsen/logrus"
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeJSON = "application/json"
)

const DefaultMaxUploadBytes int64 = 32 << 20

type TableRenderer interface {
	RenderWeekly(rows []WeeklyRow) (string, error)
	RenderPeriod(rows []PeriodRow) (string, error)
	RenderGranular(rows []GranularRow) (string, error)
	RenderTeams(rows []TeamSummary) (string, error)
}

type WorkbookRenderer interface {
	RenderWorkbook(report Report) ([]byte, error)
}

type MessageComposer interface {
	Compose(report Report) (Message, error)
}

type Handler struct {
	service        Service
	tableRenderer  TableRenderer
	workbook       WorkbookRenderer
	composer       MessageComposer
	maxUploadBytes int64
	// lenient applies when a request does not set the lenient field.
	lenient bool
}

func NewHandler(service Service, tableRenderer TableRenderer, workbook WorkbookRenderer, composer MessageComposer, maxUploadBytes int64, lenient bool) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		service:        service,
		tableRenderer:  tableRenderer,
		workbook:       workbook,
		composer:       composer,
		maxUploadBytes: maxUploadBytes,
		lenient:        lenient,
	}
}

// GenerateReport godoc
// @Summary Compute the overtime report of a timesheet export
// @Tags Overtime
// @Accept multipart/form-data
// @Produce json,text/csv
// @Param file formData file true "Timesheet export (CSV or XLSX)"
// @Param team formData string true "Team name"
// @Param contractedHours formData number false "Weekly contracted hours"
// @Success 200 {object} ReportDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid input"
// @Router /api/overtime/report [post]
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			rest.WriteError(w, http.StatusRequestEntityTooLarge, rest.ErrorResponse{
				Error:   "File too large",
				Details: fmt.Sprintf("uploads are limited to %d bytes", h.maxUploadBytes),
			})
			return
		}
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid multipart form",
			Details: err.Error(),
		})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "File is required"})
		return
	}
	defer file.Close()

	format, err := timesheet.FormatFromFilename(header.Filename)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Unsupported file type",
			Details: "upload a .csv or .xlsx export",
		})
		return
	}

	team := strings.TrimSpace(r.FormValue("team"))
	if team == "" {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Team is required"})
		return
	}

	req := RunRequest{Team: team, Input: file, Format: format, ApplyHolidays: true}
	if value := r.FormValue("contractedHours"); value != "" {
		req.ContractedHours, err = strconv.ParseFloat(value, 64)
		if err != nil || !(req.ContractedHours > 0) || math.IsInf(req.ContractedHours, 0) {
			rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
				Error:   "Invalid contractedHours",
				Details: "contractedHours must be a positive number",
			})
			return
		}
	}
	if req.Lenient, err = formBool(r, "lenient", h.lenient); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid lenient flag", Details: err.Error()})
		return
	}
	if req.ApplyHolidays, err = formBool(r, "holidays", true); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid holidays flag", Details: err.Error()})
		return
	}

	log.Debugf("Generating overtime report for %s from %s", team, header.Filename)
	report, err := h.service.Run(r.Context(), req)
	if err != nil {
		writeRunError(w, err)
		return
	}

	switch accepted(r) {
	case ContentTypeCSV:
		h.writeTable(w, r, report)
	case ContentTypeXLSX:
		h.writeWorkbook(w, report)
	default:
		h.writeJSON(w, report)
	}
}

func (h *Handler) writeTable(w http.ResponseWriter, r *http.Request, report Report) {
	var (
		table    string
		err      error
		fileName string
	)
	switch r.URL.Query().Get("table") {
	case "", "weekly":
		table, err = h.tableRenderer.RenderWeekly(report.Weekly)
		fileName = "ot_weekly_summary.csv"
	case "period":
		table, err = h.tableRenderer.RenderPeriod(report.Period)
		fileName = "ot_period_summary.csv"
	case "granular":
		table, err = h.tableRenderer.RenderGranular(report.Granular)
		fileName = "ot_granular.csv"
	case "teams":
		table, err = h.tableRenderer.RenderTeams(report.Teams)
		fileName = "ot_teams.csv"
	default:
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid table",
			Details: "table must be weekly, period, granular or teams",
		})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(table)); err != nil {
		log.Errorf("Failed to write csv response: %v", err)
	}
}

func (h *Handler) writeWorkbook(w http.ResponseWriter, report Report) {
	data, err := h.workbook.RenderWorkbook(report)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="ot_summary.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Errorf("Failed to write workbook response: %v", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, report Report) {
	dto := reportToDTO(report)
	if h.composer != nil {
		msg, err := h.composer.Compose(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		dto.Message = &MessageDTO{Subject: msg.Subject, Body: msg.Body, HasOvertime: msg.HasOvertime}
	}
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListTeams godoc
// @Summary List configured teams
// @Tags Overtime
// @Produce json
// @Success 200 {array} TeamDTO
// @Router /api/teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams := h.service.Teams()
	dtos := make([]TeamDTO, 0, len(teams))
	for _, t := range teams {
		dtos = append(dtos, teamToDTO(t))
	}
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeRunError(w http.ResponseWriter, err error) {
	var missing *timesheet.MissingColumnsError
	var invalid *timesheet.ValidationError
	switch {
	case errors.As(err, &missing):
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Missing required columns",
			Details: strings.Join(missing.Missing, ", "),
		})
	case errors.As(err, &invalid):
		issues := make([]string, 0, len(invalid.Rejected))
		for _, rec := range invalid.Rejected {
			issues = append(issues, rec.String())
		}
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid timesheet records",
			Details: fmt.Sprintf("%d record(s) rejected", len(invalid.Rejected)),
			Issues:  issues,
		})
	case errors.Is(err, contract.ErrTeamNotFound):
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Unknown team", Details: err.Error()})
	case errors.Is(err, contract.ErrInvalidContractedHours),
		errors.Is(err, timesheet.ErrUnsupportedFormat):
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request", Details: err.Error()})
	default:
		log.Errorf("Failed to generate overtime report: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// accepted picks the first supported media type of the Accept header.
func accepted(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch mediaType {
		case ContentTypeCSV, ContentTypeXLSX, ContentTypeJSON:
			return mediaType
		}
	}
	return ContentTypeJSON
}

func formBool(r *http.Request, key string, fallback bool) (bool, error) {
	value := r.FormValue(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", key)
	}
	return b, nil
}
