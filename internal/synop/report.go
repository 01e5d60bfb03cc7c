// Package synop decodes and encodes FM-12 SYNOP, FM-13 SHIP and FM-14
// SYNOP MOBIL surface observation reports. Decode splits a report into
// its five figure groups and walks the sections in order; Encode
// rebuilds the report from the decoded fields, reproducing the original
// group for every value that carries its raw code.
package synop

import (
	"synop_parser/internal/codetables"
	"synop_parser/internal/observations"
	"synop_parser/internal/obs"
)

// Radiation type keys, indexed by the radiation group header figure.
var radiationTypes = []string{
	"positive_net", "negative_net", "global_solar",
	"diffused_solar", "downward_long_wave", "upward_long_wave",
	"short_wave",
}

// Report is a fully decoded surface observation report.
type Report struct {
	StationType     string                        `json:"station_type,omitempty"`
	Callsign        *observations.Callsign        `json:"callsign,omitempty"`
	ObsTime         *observations.ObservationTime `json:"obs_time,omitempty"`
	WindIndicator   *observations.WindIndicator   `json:"wind_indicator,omitempty"`
	StationID       *string                       `json:"station_id,omitempty"`
	Region          string                        `json:"region,omitempty"`
	StationPosition *observations.StationPosition `json:"station_position,omitempty"`

	PrecipitationIndicator *observations.PrecipitationIndicator `json:"precipitation_indicator,omitempty"`
	WeatherIndicator       *observations.WeatherIndicator       `json:"weather_indicator,omitempty"`
	LowestCloudBase        *obs.Measure                         `json:"lowest_cloud_base,omitempty"`
	Visibility             *codetables.Visibility               `json:"visibility,omitempty"`
	CloudCover             *codetables.CloudCover               `json:"cloud_cover,omitempty"`
	SurfaceWind            *observations.SurfaceWind            `json:"surface_wind,omitempty"`
	AirTemperature         *obs.Measure                         `json:"air_temperature,omitempty"`
	DewpointTemperature    *obs.Measure                         `json:"dewpoint_temperature,omitempty"`
	RelativeHumidity       *obs.Measure                         `json:"relative_humidity,omitempty"`
	StationPressure        *obs.Measure                         `json:"station_pressure,omitempty"`
	SeaLevelPressure       *obs.Measure                         `json:"sea_level_pressure,omitempty"`
	Geopotential           *observations.Geopotential           `json:"geopotential,omitempty"`
	PressureTendency       *observations.PressureTendency       `json:"pressure_tendency,omitempty"`
	PrecipitationS1        *observations.Precipitation          `json:"precipitation_s1,omitempty"`
	PresentWeather         *observations.Weather                `json:"present_weather,omitempty"`
	PastWeather            []*observations.Weather              `json:"past_weather,omitempty"`
	CloudTypes             *observations.CloudTypes             `json:"cloud_types,omitempty"`
	ExactObsTime           *observations.ExactObservationTime   `json:"exact_obs_time,omitempty"`

	HasSection2           bool                                `json:"has_section_2,omitempty"`
	Displacement          *observations.ShipDisplacement      `json:"displacement,omitempty"`
	SeaSurfaceTemperature *observations.SeaSurfaceTemperature `json:"sea_surface_temperature,omitempty"`
	WindWaves             []*observations.WindWaves           `json:"wind_waves,omitempty"`
	SwellWaves            []*observations.SwellWaves          `json:"swell_waves,omitempty"`
	IceAccretion          *observations.IceAccretion          `json:"ice_accretion,omitempty"`
	WetBulbTemperature    *observations.WetBulbTemperature    `json:"wet_bulb_temperature,omitempty"`
	SeaLandIce            *observations.SeaLandIce            `json:"sea_land_ice,omitempty"`

	MaxWind                     *observations.SurfaceWind              `json:"max_wind,omitempty"`
	GroundMinimumTemperature    *obs.Measure                           `json:"ground_minimum_temperature,omitempty"`
	LocalPrecipitation          *observations.LocalPrecipitation       `json:"local_precipitation,omitempty"`
	GroundStateGrass            *observations.GroundState              `json:"ground_state_grass,omitempty"`
	TropicalSkyState            *codetables.Simple                     `json:"tropical_sky_state,omitempty"`
	TropicalCloudDriftDirection *observations.CloudDriftDirection      `json:"tropical_cloud_drift_direction,omitempty"`
	MaximumTemperature          *obs.Measure                           `json:"maximum_temperature,omitempty"`
	MinimumTemperature          *obs.Measure                           `json:"minimum_temperature,omitempty"`
	GroundState                 *observations.GroundState              `json:"ground_state,omitempty"`
	GroundStateSnow             *observations.GroundStateSnow          `json:"ground_state_snow,omitempty"`
	Evapotranspiration          *observations.Evapotranspiration       `json:"evapotranspiration,omitempty"`
	TemperatureChange           *observations.TemperatureChange        `json:"temperature_change,omitempty"`
	Sunshine                    []*observations.Sunshine               `json:"sunshine,omitempty"`
	Radiation                   map[string][]*observations.Radiation   `json:"radiation,omitempty"`
	CloudDriftDirection         *observations.CloudDriftDirection      `json:"cloud_drift_direction,omitempty"`
	CloudElevation              *observations.CloudElevation           `json:"cloud_elevation,omitempty"`
	PressureChange              *obs.Measure                           `json:"pressure_change,omitempty"`
	PrecipitationS3             *observations.Precipitation            `json:"precipitation_s3,omitempty"`
	Precipitation24h            *observations.Precipitation            `json:"precipitation_24h,omitempty"`
	PrevailingWind              *codetables.Cardinal                   `json:"prevailing_wind,omitempty"`
	CloudLayer                  []*observations.CloudLayer             `json:"cloud_layer,omitempty"`
	WeatherInfo                 *observations.WeatherInfo              `json:"weather_info,omitempty"`
	PrecipitationBegin          *observations.PrecipitationTime        `json:"precipitation_begin,omitempty"`
	PrecipitationEnd            *observations.PrecipitationTime        `json:"precipitation_end,omitempty"`
	HighestGust                 []*observations.HighestGust            `json:"highest_gust,omitempty"`
	SnowFall                    *observations.SnowFall                 `json:"snow_fall,omitempty"`
	SeaState                    *codetables.Lookup                     `json:"sea_state,omitempty"`
	SeaVisibility               *obs.Measure                           `json:"sea_visibility,omitempty"`
	FrozenDeposit               *observations.FrozenDeposit            `json:"frozen_deposit,omitempty"`
	SnowCoverRegularity         *observations.SnowCoverRegularity      `json:"snow_cover_regularity,omitempty"`
	DriftSnow                   *observations.DriftSnow                `json:"drift_snow,omitempty"`
	DepositDiameter             []observations.DepositDiameters        `json:"deposit_diameter,omitempty"`
	CloudEvolution              []*observations.CloudEvolution         `json:"cloud_evolution,omitempty"`
	MaxLowCloudConcentration    []*observations.MaxLowCloudConcentration `json:"max_low_cloud_concentration,omitempty"`
	MountainCondition           *observations.MountainCondition        `json:"mountain_condition,omitempty"`
	ValleyClouds                *observations.ValleyClouds             `json:"valley_clouds,omitempty"`
	PresentWeatherAdditional    []*observations.Weather                `json:"present_weather_additional,omitempty"`
	ImportantWeather            []*observations.ImportantWeather       `json:"important_weather,omitempty"`
	VisibilityDirection         []*observations.VisibilityDirection    `json:"visibility_direction,omitempty"`
	OpticalPhenomena            *observations.OpticalPhenomena         `json:"optical_phenomena,omitempty"`
	Mirage                      []*observations.Mirage                 `json:"mirage,omitempty"`
	StElmosFire                 bool                                   `json:"st_elmos_fire,omitempty"`
	CondensationTrails          *observations.CondensationTrails       `json:"condensation_trails,omitempty"`
	SpecialClouds               *observations.SpecialClouds            `json:"special_clouds,omitempty"`
	DayDarkness                 *observations.DayDarkness              `json:"day_darkness,omitempty"`
	SuddenTemperatureChange     *obs.Measure                           `json:"sudden_temperature_change,omitempty"`
	SuddenHumidityChange        *obs.Measure                           `json:"sudden_humidity_change,omitempty"`

	CloudBaseBelowStation []*observations.CloudBaseBelowStation `json:"cloud_base_below_station,omitempty"`

	Section5 []string `json:"section5,omitempty"`

	NotImplemented []string `json:"_not_implemented,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

// country returns the reporting country where the station index block
// determines it.
func (r *Report) country() string {
	if r.StationID == nil {
		return ""
	}
	return observations.CountryFromStationID(*r.StationID)
}
