package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"condenser_calc/condenser"
	"condenser_calc/property"
)

// Case is one calculation request: the coil input and the stage options.
type Case struct {
	Input   condenser.Input   `json:"input" yaml:"input"`
	Options condenser.Options `json:"options" yaml:"options"`
}

// DefaultCase returns the reference coil with every stage enabled.
func DefaultCase() Case {
	return Case{
		Input:   condenser.DefaultInput(),
		Options: condenser.DefaultOptions(),
	}
}

// normalize canonicalizes names typed by hand, such as "r134a".
func (c *Case) normalize() error {
	fluid, err := property.ParseFluid(string(c.Input.Refrigerant))
	if err != nil {
		return err
	}
	c.Input.Refrigerant = fluid
	c.Options.AirCorrelation = condenser.AirCorrelation(strings.ToLower(string(c.Options.AirCorrelation)))
	c.Options.AirProperties = condenser.AirPropertySource(strings.ToLower(string(c.Options.AirProperties)))
	return nil
}

/*
Loads a case file.

	Args:
	    path: .ini, .yaml, .yml or .json file. An empty path yields DefaultCase.

	Returns:
	    the case; fields missing from the file keep their DefaultCase values
*/
func LoadCase(path string) (Case, error) {
	if path == "" {
		return DefaultCase(), nil
	}

	var (
		c   Case
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ini":
		c, err = loadINI(path)
	case ".yaml", ".yml":
		c, err = loadDocument(path, yaml.Unmarshal)
	case ".json":
		c, err = loadDocument(path, json.Unmarshal)
	default:
		return Case{}, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return Case{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.normalize(); err != nil {
		return Case{}, fmt.Errorf("%s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"path":        path,
		"refrigerant": c.Input.Refrigerant,
		"airflow":     c.Input.Airflow,
		"massFlow":    c.Input.MassFlow,
	}).Info("config loaded")

	return c, nil
}

func loadDocument(path string, unmarshal func([]byte, interface{}) error) (Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Case{}, err
	}
	c := DefaultCase()
	if err := unmarshal(data, &c); err != nil {
		return Case{}, err
	}
	return c, nil
}

func loadINI(path string) (Case, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Case{}, err
	}
	return caseFromINI(file)
}

// iniReader reads typed keys, keeping the first parse failure.
type iniReader struct {
	file *ini.File
	err  error
}

// key returns the key when it is present and no earlier key failed.
func (r *iniReader) key(section, name string) *ini.Key {
	sec := r.file.Section(section)
	if r.err != nil || !sec.HasKey(name) {
		return nil
	}
	return sec.Key(name)
}

func (r *iniReader) fail(section, name string, err error) {
	r.err = fmt.Errorf("%s.%s: %w", section, name, err)
}

func (r *iniReader) floatKey(section, name string, def float64) float64 {
	k := r.key(section, name)
	if k == nil {
		return def
	}
	v, err := k.Float64()
	if err != nil {
		r.fail(section, name, err)
		return def
	}
	return v
}

func (r *iniReader) intKey(section, name string, def int) int {
	k := r.key(section, name)
	if k == nil {
		return def
	}
	v, err := k.Int()
	if err != nil {
		r.fail(section, name, err)
		return def
	}
	return v
}

func (r *iniReader) boolKey(section, name string, def bool) bool {
	k := r.key(section, name)
	if k == nil {
		return def
	}
	v, err := k.Bool()
	if err != nil {
		r.fail(section, name, err)
		return def
	}
	return v
}

func (r *iniReader) stringKey(section, name, def string) string {
	k := r.key(section, name)
	if k == nil {
		return def
	}
	return k.MustString(def)
}

// caseFromINI reads every key with the reference coil value as its default. A key that is
// present but does not parse is an error naming section.key.
func caseFromINI(file *ini.File) (Case, error) {
	def := DefaultCase()
	r := &iniReader{file: file}

	c := Case{
		Input: condenser.Input{
			Airflow:           r.floatKey("air", "airflow", def.Input.Airflow),
			Rows:              r.intKey("coil", "rows", def.Input.Rows),
			TubeOuterDiameter: r.floatKey("coil", "tube_outer_diameter", def.Input.TubeOuterDiameter),
			CoilLength:        r.floatKey("coil", "length", def.Input.CoilLength),
			CoilHeight:        r.floatKey("coil", "height", def.Input.CoilHeight),
			CoilThickness:     r.floatKey("coil", "thickness", def.Input.CoilThickness),
			FinSpacing:        r.floatKey("coil", "fin_spacing", def.Input.FinSpacing),
			RowPitch:          r.floatKey("coil", "row_pitch", def.Input.RowPitch),
			FreeFlowRatio:     r.floatKey("coil", "free_flow_ratio", def.Input.FreeFlowRatio),
			Circuits:          r.intKey("coil", "circuits", def.Input.Circuits),

			Refrigerant:           property.Fluid(r.stringKey("refrigerant", "fluid", string(def.Input.Refrigerant))),
			MassFlow:              r.floatKey("refrigerant", "mass_flow", def.Input.MassFlow),
			SuperheatTemperature:  r.floatKey("refrigerant", "superheat_temperature", def.Input.SuperheatTemperature),
			CondensingTemperature: r.floatKey("refrigerant", "condensing_temperature", def.Input.CondensingTemperature),
			SubcoolTemperature:    r.floatKey("refrigerant", "subcool_temperature", def.Input.SubcoolTemperature),
			AmbientTemperature:    r.floatKey("air", "ambient_temperature", def.Input.AmbientTemperature),

			DesuperheatArea:  r.floatKey("zones", "desuperheat_area", def.Input.DesuperheatArea),
			CondensationArea: r.floatKey("zones", "condensation_area", def.Input.CondensationArea),
			SubcoolArea:      r.floatKey("zones", "subcool_area", def.Input.SubcoolArea),
		},
		Options: condenser.Options{
			AirCorrelation: condenser.AirCorrelation(r.stringKey("options", "air_correlation", string(def.Options.AirCorrelation))),
			AirProperties:  condenser.AirPropertySource(r.stringKey("options", "air_properties", string(def.Options.AirProperties))),
			SplitCircuits:  r.boolKey("options", "split_circuits", def.Options.SplitCircuits),
			EvaluateZones:  r.boolKey("options", "evaluate_zones", def.Options.EvaluateZones),
		},
	}
	if r.err != nil {
		return Case{}, r.err
	}
	return c, nil
}
