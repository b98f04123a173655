package insight

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/tbckr/insight/internal/output"
)

// Results is a batch as printed by the lookup command.
type Results []LookupResult

// WriteTable renders one row per entity with the number of records found.
func (rs Results) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 20, 40)
	table.Header([]string{"ENTITY", "TYPE", "RECORDS", "LINK"})
	rows := make([][]string, 0, len(rs))
	for i := range rs {
		r := &rs[i]
		link := "-"
		if r.Data != nil {
			link = r.Data.Details.Link
		}
		rows = append(rows, []string{output.StripANSI(r.Entity.Value), r.Entity.Kind.String(), recordCount(r), link})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain prints populated results only, one per line.
func (rs Results) WritePlain(w io.Writer) error {
	for i := range rs {
		r := &rs[i]
		if r.Data == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			output.StripANSI(r.Entity.Value), r.Entity.Kind, recordCount(r), r.Data.Details.Link); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable renders the batch records and every detail section of a single
// result, grouped by section.
func (r *LookupResult) WriteTable(w io.Writer) error {
	if r.Data == nil {
		_, err := fmt.Fprintf(w, "No data for %s %s\n", r.Entity.Kind, output.StripANSI(r.Entity.Value))
		return err
	}
	rows, err := r.sectionRows()
	if err != nil {
		return err
	}
	table := output.NewGroupedWrappingTable(w, 30, 20)
	table.Header([]string{"SECTION", "RECORD"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain prints "section<TAB>record" lines.
func (r *LookupResult) WritePlain(w io.Writer) error {
	if r.Data == nil {
		return nil
	}
	rows, err := r.sectionRows()
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}

type section struct {
	name string
	body any
}

// sections lists the populated detail lookups in a stable order.
func (rec *DetailRecord) sections() []section {
	if rec == nil {
		return nil
	}
	all := []section{
		{"domainSsl", rec.DomainSSL},
		{"domainPassive", rec.DomainPassive},
		{"ipDynamic", rec.IPDynamic},
		{"ipSample", rec.IPSample},
		{"domainSample", rec.DomainSample},
		{"deviceGeo", rec.DeviceGeo},
		{"deviceGeoIp", rec.DeviceGeoIP},
	}
	if rec.LocalGeo != nil {
		all = append(all, section{"localGeo", rec.LocalGeo})
	}
	out := all[:0]
	for _, s := range all {
		if s.body != nil {
			out = append(out, s)
		}
	}
	return out
}

func (r *LookupResult) sectionRows() ([][]string, error) {
	secs := append([]section{{"result", r.Data.Details.Result}}, r.Data.Details.DetailRecord.sections()...)
	rows := [][]string{{"link", r.Data.Details.Link}}
	for _, s := range secs {
		for _, rec := range records(s.body) {
			line, err := json.Marshal(rec)
			if err != nil {
				return nil, fmt.Errorf("encoding %s record: %w", s.name, err)
			}
			rows = append(rows, []string{s.name, output.StripANSI(string(line))})
		}
	}
	return rows, nil
}

// records splits a list body into its elements; any other body is one record.
func records(body any) []any {
	switch v := body.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}

func recordCount(r *LookupResult) string {
	if r.Data == nil {
		return "no data"
	}
	return strconv.Itoa(len(records(r.Data.Details.Result)))
}
