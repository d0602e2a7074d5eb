package api

import (
	"net/http"
	"testing"

	"github.com/nerrad567/smarthome-core/internal/audit"
)

func TestHouseEndpoints(t *testing.T) {
	c := newClient(t, testServer(t))

	var h houseView
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/house", nil, &h)
	if h.ID != "house-1" || h.Location != nil {
		t.Errorf("house = %+v", h)
	}

	loc := locationView{
		Street: "Rua Direita", DoorNumber: "12", ZipCode: "4000-000",
		City: "Porto", Country: "Portugal", Latitude: 41.15, Longitude: -8.61,
	}
	c.expect(http.StatusOK, http.MethodPut, "/api/v1/house/location", loc, nil)

	c.expect(http.StatusOK, http.MethodGet, "/api/v1/house", nil, &h)
	if h.Location == nil || h.Location.ZipCode != "4000-000" || h.Location.Latitude != 41.15 {
		t.Errorf("location = %+v", h.Location)
	}

	bad := loc
	bad.ZipCode = "12345"
	var e Error
	c.expect(http.StatusBadRequest, http.MethodPut, "/api/v1/house/location", bad, &e)
	if e.Code != ErrCodeValidation {
		t.Errorf("code = %q, want %q", e.Code, ErrCodeValidation)
	}
}

func TestRoomEndpoints(t *testing.T) {
	c := newClient(t, testServer(t))

	var rm roomView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/rooms", roomRequest{Floor: 1, Length: 4, Width: 3, Height: 2.5}, &rm)
	if rm.Floor != 1 || rm.Area != 12 || rm.HouseID != "house-1" {
		t.Errorf("room = %+v", rm)
	}

	c.expect(http.StatusOK, http.MethodPatch, "/api/v1/rooms/"+rm.ID, roomRequest{Floor: 2, Length: 5, Width: 3, Height: 2.5}, &rm)
	if rm.Floor != 2 || rm.Length != 5 {
		t.Errorf("edited room = %+v", rm)
	}

	var list struct {
		Rooms []roomView `json:"rooms"`
		Count int        `json:"count"`
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/rooms", nil, &list)
	if list.Count != 1 || list.Rooms[0].ID != rm.ID {
		t.Errorf("rooms = %+v", list)
	}

	var garden roomView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/rooms", roomRequest{Length: 10, Width: 8}, &garden)
	if garden.Inside || !rm.Inside {
		t.Errorf("inside flags = %v (garden), %v (room)", garden.Inside, rm.Inside)
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/rooms?inside=false", nil, &list)
	if list.Count != 1 || list.Rooms[0].ID != garden.ID {
		t.Errorf("outdoor rooms = %+v", list)
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/rooms?inside=true", nil, &list)
	if list.Count != 1 || list.Rooms[0].ID != rm.ID {
		t.Errorf("indoor rooms = %+v", list)
	}
	c.expect(http.StatusBadRequest, http.MethodGet, "/api/v1/rooms?inside=maybe", nil, nil)

	c.expect(http.StatusBadRequest, http.MethodPost, "/api/v1/rooms", roomRequest{Length: 0, Width: 3}, nil)
	c.expect(http.StatusNotFound, http.MethodGet, "/api/v1/rooms/missing", nil, nil)
	c.expect(http.StatusNotFound, http.MethodGet, "/api/v1/rooms/missing/devices", nil, nil)
}

// setupDevice creates a room and a device in it.
func setupDevice(c *client) (roomView, deviceView) {
	c.t.Helper()
	var rm roomView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/rooms", roomRequest{Length: 4, Width: 3, Height: 2.5}, &rm)
	var d deviceView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices", createDeviceRequest{RoomID: rm.ID, Model: "Shelly Plus 1"}, &d)
	return rm, d
}

func TestDeviceEndpoints(t *testing.T) {
	c := newClient(t, testServer(t))
	rm, d := setupDevice(c)

	if d.Model != "Shelly Plus 1" || d.RoomID != rm.ID || !d.Active || d.Status != "ACTIVE" {
		t.Errorf("device = %+v", d)
	}

	var list struct {
		Devices []deviceView `json:"devices"`
		Count   int          `json:"count"`
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/rooms/"+rm.ID+"/devices", nil, &list)
	if list.Count != 1 {
		t.Errorf("room devices = %+v", list)
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/devices?room_id="+rm.ID, nil, &list)
	if list.Count != 1 {
		t.Errorf("filtered devices = %+v", list)
	}

	c.expect(http.StatusBadRequest, http.MethodPost, "/api/v1/devices", createDeviceRequest{RoomID: rm.ID, Model: " "}, nil)
	c.expect(http.StatusNotFound, http.MethodPost, "/api/v1/devices", createDeviceRequest{RoomID: "nowhere", Model: "X"}, nil)

	var sn sensorView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/sensors", createSensorRequest{FunctionalityID: "TemperatureCelsius"}, &sn)
	c.expect(http.StatusNotFound, http.MethodPost, "/api/v1/devices/"+d.ID+"/sensors", createSensorRequest{FunctionalityID: "Telepathy"}, nil)
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/sensors", createSensorRequest{FunctionalityID: "HumidityPercentage"}, nil)

	var sensorList struct {
		Sensors []sensorView `json:"sensors"`
		Count   int          `json:"count"`
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/devices/"+d.ID+"/sensors?functionality=TemperatureCelsius", nil, &sensorList)
	if sensorList.Count != 1 || sensorList.Sensors[0].ID != sn.ID {
		t.Errorf("temperature sensors = %+v", sensorList)
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/devices/"+d.ID+"/sensors", nil, &sensorList)
	if sensorList.Count != 2 {
		t.Errorf("device sensors = %+v", sensorList)
	}
	c.expect(http.StatusNotFound, http.MethodGet, "/api/v1/devices/"+d.ID+"/sensors?functionality=Telepathy", nil, nil)

	var a actuatorView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/actuators", createActuatorRequest{FunctionalityID: "Switch"}, &a)
	if a.Kind != "switch" || a.Target == nil || *a.Target != 1 {
		t.Errorf("switch = %+v", a)
	}

	var grouped map[string]map[string][]string
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/devices/by-functionality", nil, &grouped)
	if ids := grouped["TemperatureCelsius"][rm.ID]; len(ids) != 1 || ids[0] != d.ID {
		t.Errorf("grouped = %v", grouped)
	}
	if ids := grouped["Switch"][rm.ID]; len(ids) != 1 {
		t.Errorf("grouped = %v", grouped)
	}

	var deact struct {
		Changed bool       `json:"changed"`
		Device  deviceView `json:"device"`
	}
	c.expect(http.StatusOK, http.MethodPost, "/api/v1/devices/"+d.ID+"/deactivate", nil, &deact)
	if !deact.Changed || deact.Device.Active {
		t.Errorf("deactivate = %+v", deact)
	}
	c.expect(http.StatusOK, http.MethodPost, "/api/v1/devices/"+d.ID+"/deactivate", nil, &deact)
	if deact.Changed {
		t.Error("second deactivate should not change the device")
	}

	var e Error
	c.expect(http.StatusConflict, http.MethodPost, "/api/v1/devices/"+d.ID+"/sensors", createSensorRequest{FunctionalityID: "DewPoint"}, &e)
	if e.Code != ErrCodeDeviceInactive {
		t.Errorf("code = %q, want %q", e.Code, ErrCodeDeviceInactive)
	}
}

func TestFunctionalityEndpoints(t *testing.T) {
	c := newClient(t, testServer(t))

	var sensors struct {
		Functionalities []sensorFunctionalityView `json:"functionalities"`
		Count           int                       `json:"count"`
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/functionalities/sensors", nil, &sensors)
	if sensors.Count != 12 {
		t.Errorf("sensor functionalities = %d, want 12", sensors.Count)
	}

	var actuators struct {
		Functionalities []actuatorFunctionalityView `json:"functionalities"`
		Count           int                         `json:"count"`
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/functionalities/actuators", nil, &actuators)
	if actuators.Count != 4 {
		t.Errorf("actuator functionalities = %d, want 4", actuators.Count)
	}
}

func TestActuatorEndpoints(t *testing.T) {
	c := newClient(t, testServer(t))
	_, d := setupDevice(c)

	var a actuatorView
	req := createActuatorRequest{
		FunctionalityID: "DecimalSetter",
		DecimalRange:    &decimalRangeView{Lower: 10, Upper: 30, Precision: 1},
	}
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/actuators", req, &a)
	if a.Target != nil || a.DecimalRange == nil || a.DecimalRange.Precision != 1 {
		t.Errorf("decimal setter = %+v", a)
	}

	c.expect(http.StatusBadRequest, http.MethodPost, "/api/v1/devices/"+d.ID+"/actuators",
		createActuatorRequest{FunctionalityID: "IntegerSetter"}, nil)

	type result struct {
		Accepted bool         `json:"accepted"`
		Actuator actuatorView `json:"actuator"`
	}
	value := func(v float64) *float64 { return &v }

	var res result
	c.expect(http.StatusOK, http.MethodPut, "/api/v1/actuators/"+a.ID+"/target", targetRequest{Value: value(21.57)}, &res)
	if !res.Accepted || res.Actuator.Target == nil || *res.Actuator.Target != 21.6 {
		t.Errorf("accepted target = %+v", res)
	}

	c.expect(http.StatusOK, http.MethodPut, "/api/v1/actuators/"+a.ID+"/target", targetRequest{Value: value(31)}, &res)
	if res.Accepted || *res.Actuator.Target != 21.6 {
		t.Errorf("rejected target = %+v", res)
	}

	c.expect(http.StatusBadRequest, http.MethodPut, "/api/v1/actuators/"+a.ID+"/target", targetRequest{}, nil)
	c.expect(http.StatusNotFound, http.MethodPut, "/api/v1/actuators/missing/target", targetRequest{Value: value(1)}, nil)

	var list struct {
		Actuators []actuatorView `json:"actuators"`
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/devices/"+d.ID+"/actuators", nil, &list)
	if len(list.Actuators) != 1 {
		t.Errorf("actuators = %+v", list)
	}

	c.expect(http.StatusOK, http.MethodPost, "/api/v1/devices/"+d.ID+"/deactivate", nil, nil)
	var e Error
	c.expect(http.StatusConflict, http.MethodPut, "/api/v1/actuators/"+a.ID+"/target", targetRequest{Value: value(20)}, &e)
	if e.Code != ErrCodeDeviceInactive {
		t.Errorf("code = %q", e.Code)
	}
}

func TestBlindEndpoints(t *testing.T) {
	c := newClient(t, testServer(t))
	rm, d := setupDevice(c)
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/actuators", createActuatorRequest{FunctionalityID: "BlindSetter"}, nil)

	var blinds struct {
		Devices map[string]string `json:"devices"`
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/blinds", nil, &blinds)
	if blinds.Devices[d.ID] != rm.ID {
		t.Errorf("blinds = %v", blinds.Devices)
	}

	pct := func(v int) *int { return &v }
	var res struct {
		Accepted bool `json:"accepted"`
	}
	c.expect(http.StatusOK, http.MethodPut, "/api/v1/devices/"+d.ID+"/blind", blindRequest{Percentage: pct(40)}, &res)
	if !res.Accepted {
		t.Error("blind 40% should be accepted")
	}
	c.expect(http.StatusOK, http.MethodPut, "/api/v1/devices/"+d.ID+"/blind", blindRequest{Percentage: pct(101)}, &res)
	if res.Accepted {
		t.Error("blind 101% should be rejected")
	}
	c.expect(http.StatusBadRequest, http.MethodPut, "/api/v1/devices/"+d.ID+"/blind", blindRequest{}, nil)
	c.expect(http.StatusNotFound, http.MethodPut, "/api/v1/devices/missing/blind", blindRequest{Percentage: pct(10)}, nil)
}

func TestValueEndpoints(t *testing.T) {
	c := newClient(t, testServer(t))
	_, d := setupDevice(c)

	var temp, power sensorView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/sensors", createSensorRequest{FunctionalityID: "TemperatureCelsius"}, &temp)
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/sensors", createSensorRequest{FunctionalityID: "PowerAverage"}, &power)

	var v valueView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/sensors/"+temp.ID+"/values",
		map[string]any{"measurement": "21.5", "unit": "C", "timestamp": "2026-10-18T12:00:00Z"}, &v)
	if v.Kind != "instant" || v.Display != "21.5 C" || v.At == nil {
		t.Errorf("instant value = %+v", v)
	}

	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/sensors/"+power.ID+"/values",
		map[string]any{"measurement": "1200", "unit": "W", "start": "2026-10-18T11:45:00Z", "end": "2026-10-18T12:00:00Z"}, &v)
	if v.Kind != "period" || v.Start == nil || v.End == nil {
		t.Errorf("period value = %+v", v)
	}

	c.expect(http.StatusBadRequest, http.MethodPost, "/api/v1/sensors/"+power.ID+"/values",
		map[string]any{"measurement": "1200", "unit": "W"}, nil)
	c.expect(http.StatusNotFound, http.MethodPost, "/api/v1/sensors/missing/values",
		map[string]any{"measurement": "1", "unit": "W"}, nil)

	var list struct {
		Values []valueView `json:"values"`
		Count  int         `json:"count"`
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/sensors/"+temp.ID+"/values", nil, &list)
	if list.Count != 1 {
		t.Errorf("values = %+v", list)
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/sensors/"+temp.ID+"/values?from=2026-10-19T00:00:00Z&to=2026-10-20T00:00:00Z", nil, &list)
	if list.Count != 0 {
		t.Errorf("values outside interval = %+v", list)
	}
	c.expect(http.StatusBadRequest, http.MethodGet, "/api/v1/sensors/"+temp.ID+"/values?from=yesterday", nil, nil)

	var grouped map[string][]readingView
	c.expect(http.StatusOK, http.MethodGet,
		"/api/v1/devices/"+d.ID+"/measurements?from=2026-10-18T00:00:00Z&to=2026-10-19T00:00:00Z", nil, &grouped)
	if len(grouped["TemperatureCelsius"]) != 1 || len(grouped["PowerAverage"]) != 1 {
		t.Errorf("measurements = %v", grouped)
	}
	c.expect(http.StatusBadRequest, http.MethodGet, "/api/v1/devices/"+d.ID+"/measurements", nil, nil)

	c.expect(http.StatusOK, http.MethodGet, "/api/v1/devices/"+d.ID+"/measurements/last?functionality=TemperatureCelsius", nil, &v)
	if v.Measurement != "21.5" {
		t.Errorf("last = %+v", v)
	}
	c.expect(http.StatusNotFound, http.MethodGet, "/api/v1/devices/"+d.ID+"/measurements/last?functionality=DewPoint", nil, nil)
}

func TestPeakPowerEndpoint(t *testing.T) {
	c := newClient(t, testServer(t))

	var e Error
	c.expect(http.StatusServiceUnavailable, http.MethodGet,
		"/api/v1/energy/peak-power?from=2026-10-18T00:00:00Z&to=2026-10-19T00:00:00Z", nil, &e)
	if e.Code != ErrCodeNotConfigured {
		t.Errorf("code = %q, want %q", e.Code, ErrCodeNotConfigured)
	}
	c.expect(http.StatusBadRequest, http.MethodGet, "/api/v1/energy/peak-power", nil, nil)
	c.expect(http.StatusBadRequest, http.MethodGet,
		"/api/v1/energy/peak-power?from=2026-10-19T00:00:00Z&to=2026-10-18T00:00:00Z", nil, nil)
}

func TestAuditEndpoint(t *testing.T) {
	srv := testServer(t)
	c := newClient(t, srv)
	c.expect(http.StatusUnauthorized, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "admin", "password": "wrong"}, nil)

	_, d := setupDevice(c)
	var a actuatorView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/actuators", createActuatorRequest{FunctionalityID: "BlindSetter"}, &a)
	v := 30.0
	c.expect(http.StatusOK, http.MethodPut, "/api/v1/actuators/"+a.ID+"/target", targetRequest{Value: &v}, nil)
	c.expect(http.StatusOK, http.MethodPost, "/api/v1/devices/"+d.ID+"/deactivate", nil, nil)
	c.expect(http.StatusOK, http.MethodPost, "/api/v1/devices/"+d.ID+"/deactivate", nil, nil)

	var page audit.Page
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/audit", nil, &page)
	counts := map[string]int{}
	for _, e := range page.Entries {
		counts[e.Action]++
	}
	if counts[audit.ActionLogin] != 2 || counts[audit.ActionCommand] != 1 || counts[audit.ActionDeactivate] != 1 {
		t.Errorf("audit actions = %v", counts)
	}

	c.expect(http.StatusOK, http.MethodGet, "/api/v1/audit?entity_type=device&entity_id="+d.ID, nil, &page)
	if page.Total != 1 || page.Entries[0].Subject != "admin" {
		t.Errorf("device audit = %+v", page)
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/audit?action=command", nil, &page)
	if page.Total != 1 || page.Entries[0].EntityID != a.ID || page.Entries[0].Details["target"] != 30.0 {
		t.Errorf("command audit = %+v", page)
	}
	c.expect(http.StatusOK, http.MethodGet, "/api/v1/audit?limit=1", nil, &page)
	if page.Total != 4 || len(page.Entries) != 1 {
		t.Errorf("paged audit = %+v", page)
	}
	c.expect(http.StatusBadRequest, http.MethodGet, "/api/v1/audit?limit=-1", nil, nil)
	c.expect(http.StatusBadRequest, http.MethodGet, "/api/v1/audit?offset=x", nil, nil)

	srv.audit = nil
	c.expect(http.StatusServiceUnavailable, http.MethodGet, "/api/v1/audit", nil, nil)
}
