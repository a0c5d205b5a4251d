package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/wheretogo/compass/internal/handler/health"
)

type resolveQuery struct {
	Identity string `query:"identity" required:"true" description:"Opaque identity, e.g. a device id or device id with reroll suffix."`
	Date     string `query:"date" required:"true" description:"Calendar day, YYYY-MM-DD." example:"2024-01-15"`
}

type devicePath struct {
	DeviceID string `path:"deviceID"`
}

type spinBody struct {
	devicePath
	SpinRequest
}

type shareQuery struct {
	devicePath
	Attempt int `query:"attempt" minimum:"0" description:"Reroll counter; 0 is the first spin of the day."`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Where To Go API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Daily travel compass: a deterministic direction and spots for each device and day.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the key-value store.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/directions
	getDirections, _ := r.NewOperationContext(http.MethodGet, "/api/directions")
	getDirections.SetSummary("List directions")
	getDirections.SetDescription("Returns the four directions and the content table version.")
	getDirections.AddRespStructure(DirectionsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getDirections)

	// GET /api/resolve
	getResolve, _ := r.NewOperationContext(http.MethodGet, "/api/resolve")
	getResolve.SetSummary("Resolve travel")
	getResolve.SetDescription("Runs the deterministic resolver for an identity and date. Same input, same output. The hidden gem is left out; see the gem unlock route.")
	getResolve.AddReqStructure(resolveQuery{})
	getResolve.AddRespStructure(ResultResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getResolve.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getResolve)

	// GET /api/tomorrow
	getTomorrow, _ := r.NewOperationContext(http.MethodGet, "/api/tomorrow")
	getTomorrow.SetSummary("Tomorrow teaser")
	getTomorrow.SetDescription("Returns the teaser direction for tomorrow, shared by every device.")
	getTomorrow.AddRespStructure(TomorrowResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getTomorrow)

	// POST /api/devices
	postDevice, _ := r.NewOperationContext(http.MethodPost, "/api/devices")
	postDevice.SetSummary("Provision device")
	postDevice.SetDescription("Returns the given device when known, otherwise issues a new identity. firstVisit marks the welcome flow.")
	postDevice.AddReqStructure(ProvisionRequest{})
	postDevice.AddRespStructure(DeviceResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postDevice.AddRespStructure(DeviceResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postDevice.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postDevice)

	// GET /api/devices/{deviceID}
	getDevice, _ := r.NewOperationContext(http.MethodGet, "/api/devices/{deviceID}")
	getDevice.SetSummary("Open app")
	getDevice.SetDescription("Greeting, tomorrow teaser and, after a spin today, the same result again.")
	getDevice.AddReqStructure(devicePath{})
	getDevice.AddRespStructure(VisitResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getDevice.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getDevice)

	// POST /api/devices/{deviceID}/spin
	postSpin, _ := r.NewOperationContext(http.MethodPost, "/api/devices/{deviceID}/spin")
	postSpin.SetSummary("Spin compass")
	postSpin.SetDescription("Resolves today's travel for the attempt. Each reroll increments attempt. The hidden gem is withheld.")
	postSpin.AddReqStructure(spinBody{})
	postSpin.AddRespStructure(SpinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSpin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSpin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postSpin)

	// POST /api/devices/{deviceID}/gem
	postGem, _ := r.NewOperationContext(http.MethodPost, "/api/devices/{deviceID}/gem")
	postGem.SetSummary("Unlock hidden gem")
	postGem.SetDescription("Shows an ad when the host supports it, then returns the hidden gem for the attempt.")
	postGem.AddReqStructure(spinBody{})
	postGem.AddRespStructure(GemResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postGem)

	// GET /api/devices/{deviceID}/share
	getShare, _ := r.NewOperationContext(http.MethodGet, "/api/devices/{deviceID}/share")
	getShare.SetSummary("Share message")
	getShare.SetDescription("Returns the message to share today's result.")
	getShare.AddReqStructure(shareQuery{})
	getShare.AddRespStructure(ShareResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getShare.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getShare.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getShare)

	// GET /api/devices/{deviceID}/journal
	getJournal, _ := r.NewOperationContext(http.MethodGet, "/api/devices/{deviceID}/journal")
	getJournal.SetSummary("Travel journal")
	getJournal.SetDescription("Past results, newest first, one per day.")
	getJournal.AddReqStructure(devicePath{})
	getJournal.AddRespStructure(JournalResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getJournal.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getJournal)

	// GET /api/devices/{deviceID}/stamps
	getStamps, _ := r.NewOperationContext(http.MethodGet, "/api/devices/{deviceID}/stamps")
	getStamps.SetSummary("Monthly stamps")
	getStamps.SetDescription("Directions collected this month.")
	getStamps.AddReqStructure(devicePath{})
	getStamps.AddRespStructure(StampsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getStamps.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getStamps)

	// GET /api/devices/{deviceID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/devices/{deviceID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events for the device's spins and unlocks.")
	getEvents.AddReqStructure(devicePath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
