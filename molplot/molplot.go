/*
Molplot renders quick-look diagnostic plots for a molecule, currently a
histogram of the resolved partial charges. The plots are a sanity check
on the type resolution, not publication material.
*/
package molplot

import (
	"fmt"
	"image/color"
	"log"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	mol "github.com/leelasd/mmdevel"
)

func basicChargePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Charge (e)"
	p.Y.Label.Text = "Atoms"
	p.Add(plotter.NewGrid())
	return p
}

// ChargeHistogram plots the distribution of the partial charges q
// resolves for the atoms of M, with nbins bins, into plotname.png. A
// summary of the distribution, total charge included, goes to the
// diagnostic log. Every atom must have a resolvable charge.
func ChargeHistogram(M mol.Atomer, q mol.Charger, nbins int, title, plotname string) error {
	if q == nil {
		return fmt.Errorf("ChargeHistogram: no charge table to plot from")
	}
	if M == nil || M.Len() == 0 {
		return fmt.Errorf("ChargeHistogram: no atoms to plot")
	}
	charges := make(plotter.Values, 0, M.Len())
	for i := 0; i < M.Len(); i++ {
		c, err := q.Charge(M.Atom(i))
		if err != nil {
			return err
		}
		charges = append(charges, c)
	}
	log.Printf("Total charge: %.3f (mean %.3f, std. dev. %.3f over %d atoms)",
		floats.Sum(charges), stat.Mean(charges, nil), stat.StdDev(charges, nil), len(charges))
	p := basicChargePlot(title)
	h, err := plotter.NewHist(charges, nbins)
	if err != nil {
		return err
	}
	h.FillColor = color.RGBA{R: 90, G: 155, B: 212, A: 255}
	p.Add(h)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(4*vg.Inch, 4*vg.Inch, filename); err != nil {
		return err
	}
	return nil
}
