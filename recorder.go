package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"condenser_calc/condenser"
)

const (
	zonesFileName  = "result_zones.csv"
	resultFileName = "result.json"
)

// Recorder writes the outcome of one calculation.
type Recorder struct {
	dir string    // output directory, empty disables file output
	out io.Writer // summary destination
}

// NewRecorder writes files to dir (none when empty) and the summary to out.
func NewRecorder(dir string, out io.Writer) *Recorder {
	return &Recorder{dir: dir, out: out}
}

// Record prints the summary and, when an output directory is set, saves the zone table
// and the full result.
func (r *Recorder) Record(c Case, res *condenser.Result) error {
	r.summary(c, res)
	if r.dir == "" {
		return nil
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return err
	}
	if len(res.Zones) > 0 {
		if err := r.saveZones(res.Zones); err != nil {
			return err
		}
	}
	return r.saveJSON(res)
}

// PrintJSON writes the full result as indented JSON to the summary destination.
func (r *Recorder) PrintJSON(res *condenser.Result) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func (r *Recorder) saveZones(zones []condenser.ZoneResult) error {
	path := filepath.Join(r.dir, zonesFileName)
	log.Infof("Save zone results to `%s`", path)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&zones, f)
}

func (r *Recorder) saveJSON(res *condenser.Result) error {
	path := filepath.Join(r.dir, resultFileName)
	log.Infof("Save calculation result to `%s`", path)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (r *Recorder) summary(c Case, res *condenser.Result) {
	w := r.out
	in := c.Input

	fmt.Fprintf(w, "Condenser: %s, %.3f kg/s, %.1f/%.1f/%.1f degC\n",
		in.Refrigerant, in.MassFlow, in.SuperheatTemperature, in.CondensingTemperature, in.SubcoolTemperature)
	fmt.Fprintf(w, "Tubes: %d per row, %d total, %d circuits (%.2f tubes/circuit)\n",
		res.Geometry.TubesPerRow, res.Geometry.TotalTubes, res.Geometry.Circuits, res.Geometry.TubesPerCircuit)
	fmt.Fprintf(w, "Saturation pressure: %.1f kPa\n", res.SaturationPressure/1e3)

	fmt.Fprintln(w, "\nAir side")
	fmt.Fprintf(w, "  velocity %.2f m/s  Re %.0f  Pr %.3f  Nu %.1f  h %.1f W/m2K\n",
		res.Air.Velocity, res.Air.Reynolds, res.Air.Prandtl, res.Air.Nusselt, res.Air.H)

	fmt.Fprintln(w, "\nRefrigerant side")
	for _, z := range []struct {
		name string
		r    condenser.RefrigerantSideResult
		u    float64
	}{
		{"desuperheating", res.Desuperheat, res.U.Desuperheat},
		{"condensation", res.Condensation, res.U.Condensation},
		{"subcooling", res.Subcool, res.U.Subcool},
	} {
		fmt.Fprintf(w, "  %-15s Re %8.0f  Pr %6.3f  Nu %7.1f  h %7.1f  U %6.1f W/m2K\n",
			z.name, z.r.Reynolds, z.r.Prandtl, z.r.Nusselt, z.r.H, z.u)
	}

	if len(res.Zones) == 0 {
		return
	}

	fmt.Fprintln(w, "\nZones")
	fmt.Fprintf(w, "  %-15s %10s %10s %7s %6s %10s %8s %8s\n",
		"zone", "Q_req [W]", "Q_act [W]", "NTU", "eff", "Cmin [W/K]", "Tin", "Tout")
	for _, z := range res.Zones {
		fmt.Fprintf(w, "  %-15s %10.0f %10.0f %7.3f %6.3f %10.1f %8.2f %8.2f\n",
			z.Name, z.RequiredDuty, z.ActualDuty, z.NTU, z.Effectiveness, z.CMin,
			z.AirInletTemperature, z.AirOutletTemperature)
	}
	fmt.Fprintf(w, "  %-15s %10.0f %10.0f\n", "total", res.RequiredDuty, res.ActualDuty)
	fmt.Fprintf(w, "Air outlet temperature: %.2f degC\n", res.AirOutletTemperature)
}
