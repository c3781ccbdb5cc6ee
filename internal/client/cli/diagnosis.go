package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/medmate/internal/client/client"
)

func (a *App) diagnose(ctx context.Context, args []string) error {
	symptoms := strings.Join(args, " ")
	if symptoms == "" {
		var err error
		symptoms, err = getSimpleText(a.reader, "Describe your symptoms", a.out)
		if err != nil {
			return err
		}
	}
	if symptoms == "" {
		return errCancelled
	}

	resp, err := a.api.Diagnose(ctx, symptoms)
	if err != nil {
		return err
	}
	printSymptomDiagnosis(a.out, &resp.Result)
	a.refresh(ctx)
	return nil
}

func (a *App) diagnoseImage(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: diagnose-image <path> [symptoms]")
		return nil
	}
	path := args[0]
	if !client.IsSupportedImage(path) {
		fmt.Fprintln(a.out, "Unsupported image type. Use png, jpg, jpeg, gif, bmp or webp.")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	resp, err := a.api.DiagnoseImage(ctx, f, filepath.Base(path), strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	printImageDiagnosis(a.out, &resp.Result)
	a.refresh(ctx)
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	page, ok := pageArg(a.out, args, "history")
	if !ok {
		return nil
	}
	resp, err := a.api.DiagnosisHistory(ctx, page, 0)
	if err != nil {
		return err
	}
	if len(resp.Diagnoses) == 0 {
		fmt.Fprintln(a.out, "No diagnoses yet.")
		return nil
	}
	for _, d := range resp.Diagnoses {
		fmt.Fprintf(a.out, "#%d  %s  %s\n", d.ID, d.CreatedAt, summarize(d))
	}
	printPage(a.out, resp.Page)
	return nil
}

// summarize names the top finding of a stored diagnosis.
func summarize(d client.DiagnosisRecord) string {
	if d.ImageURL != nil {
		r, err := d.Image()
		if err != nil || len(r.Conditions) == 0 {
			return "[image]"
		}
		return fmt.Sprintf("[image] %s (%.0f%%)", r.Conditions[0].Name, r.Conditions[0].Confidence)
	}
	r, err := d.Symptom()
	if err != nil || len(r.Diseases) == 0 {
		return d.Symptoms
	}
	return fmt.Sprintf("%s: %s (%.0f%%)", d.Symptoms, r.Diseases[0].Name, r.Diseases[0].Confidence)
}

func printSymptomDiagnosis(w io.Writer, r *client.SymptomDiagnosis) {
	if len(r.Diseases) == 0 {
		fmt.Fprintln(w, "No likely conditions found.")
	}
	for i, d := range r.Diseases {
		fmt.Fprintf(w, "%d. %s (%.0f%%)", i+1, d.Name, d.Confidence)
		if d.Urgency != "" {
			fmt.Fprintf(w, ", urgency: %s", d.Urgency)
		}
		fmt.Fprintln(w)
		if d.Explanation != "" {
			fmt.Fprintf(w, "   %s\n", d.Explanation)
		}
		for _, s := range d.Solutions {
			fmt.Fprintf(w, "   - %s\n", s)
		}
	}
	if r.GeneralAdvice != "" {
		fmt.Fprintf(w, "Advice: %s\n", r.GeneralAdvice)
	}
	if r.Disclaimer != "" {
		fmt.Fprintln(w, r.Disclaimer)
	}
}

func printImageDiagnosis(w io.Writer, r *client.ImageDiagnosis) {
	if r.Observation != "" {
		fmt.Fprintf(w, "Observation: %s\n", r.Observation)
	}
	for i, c := range r.Conditions {
		fmt.Fprintf(w, "%d. %s (%.0f%%)\n", i+1, c.Name, c.Confidence)
		if c.Note != "" {
			fmt.Fprintf(w, "   %s\n", c.Note)
		}
	}
	if r.Recommendation != "" {
		fmt.Fprintf(w, "Recommendation: %s\n", r.Recommendation)
	}
	if r.ProfessionalEvaluation != "" {
		fmt.Fprintf(w, "See a professional: %s\n", r.ProfessionalEvaluation)
	}
	if r.Disclaimer != "" {
		fmt.Fprintln(w, r.Disclaimer)
	}
}

// pageArg parses an optional 1-based page number. On bad input it prints the
// usage and reports false.
func pageArg(w io.Writer, args []string, name string) (int, bool) {
	if len(args) == 0 {
		return 1, true
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		fmt.Fprintf(w, "Usage: %s [page]\n", name)
		return 0, false
	}
	return page, true
}

func printPage(w io.Writer, p client.Page) {
	fmt.Fprintf(w, "Page %d of %d (%d total)\n", p.CurrentPage, p.Pages, p.Total)
}
