package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// RequestSetting is one row of the flat key/value settings store.
type RequestSetting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings keys
const (
	SettingRequestPrefix         = "request_prefix"
	SettingNextRequestNumber     = "next_request_number"
	SettingUseWarehouseReception = "use_warehouse_reception"
	SettingRoutes                = "routes"
	SettingShippingMethods       = "shipping_methods"
	SettingExportLogoURL         = "export_logo_url"
	SettingExportFooterNote      = "export_footer_note"
)

// RequestSettings is the typed view over the key/value rows. It is loaded
// explicitly, mutated in memory and persisted with an explicit save, never
// through a hidden singleton.
type RequestSettings struct {
	RequestPrefix         string   `json:"request_prefix"`
	NextRequestNumber     int      `json:"next_request_number"`
	UseWarehouseReception bool     `json:"use_warehouse_reception"`
	Routes                []string `json:"routes"`
	ShippingMethods       []string `json:"shipping_methods"`
	ExportLogoURL         string   `json:"export_logo_url"`
	ExportFooterNote      string   `json:"export_footer_note"`
}

// DefaultRequestSettings are seeded on first boot.
func DefaultRequestSettings() RequestSettings {
	return RequestSettings{
		RequestPrefix:         "SC-",
		NextRequestNumber:     1,
		UseWarehouseReception: false,
		Routes:                []string{},
		ShippingMethods:       []string{},
	}
}

// SettingsFromKV builds the typed settings from the raw key/value rows,
// falling back to defaults for missing or malformed values.
func SettingsFromKV(kv map[string]string) RequestSettings {
	s := DefaultRequestSettings()

	if v, ok := kv[SettingRequestPrefix]; ok {
		s.RequestPrefix = v
	}
	if v, ok := kv[SettingNextRequestNumber]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.NextRequestNumber = n
		}
	}
	if v, ok := kv[SettingUseWarehouseReception]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.UseWarehouseReception = b
		}
	}
	if v, ok := kv[SettingRoutes]; ok {
		var routes []string
		if err := json.Unmarshal([]byte(v), &routes); err == nil {
			s.Routes = routes
		}
	}
	if v, ok := kv[SettingShippingMethods]; ok {
		var methods []string
		if err := json.Unmarshal([]byte(v), &methods); err == nil {
			s.ShippingMethods = methods
		}
	}
	if v, ok := kv[SettingExportLogoURL]; ok {
		s.ExportLogoURL = v
	}
	if v, ok := kv[SettingExportFooterNote]; ok {
		s.ExportFooterNote = v
	}

	return s
}

// ToKV flattens the typed settings back into key/value rows.
func (s RequestSettings) ToKV() map[string]string {
	routes, _ := json.Marshal(s.Routes)
	methods, _ := json.Marshal(s.ShippingMethods)

	return map[string]string{
		SettingRequestPrefix:         s.RequestPrefix,
		SettingNextRequestNumber:     strconv.Itoa(s.NextRequestNumber),
		SettingUseWarehouseReception: strconv.FormatBool(s.UseWarehouseReception),
		SettingRoutes:                string(routes),
		SettingShippingMethods:       string(methods),
		SettingExportLogoURL:         s.ExportLogoURL,
		SettingExportFooterNote:      s.ExportFooterNote,
	}
}
