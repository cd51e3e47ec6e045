package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"rotodendron/internal/model"
	"rotodendron/internal/tree"
)

var csvHeader = []string{"node_text", "parent_text", "creation_time", "depth", "node_id", "parent_id"}

func (s Store) WriteOutline(t *tree.Tree) error {
	return writeFileWith(s.OutlinePath(), t.WriteOutline)
}

func (s Store) WriteCSV(t *tree.Tree) error {
	return writeFileWith(s.CSVPath(), func(w io.Writer) error {
		return WriteRecordsCSV(w, t.Records())
	})
}

// WriteRecordsCSV writes one row per record under a fixed header. Creation
// times are Unix seconds with a microsecond fraction; the root's children
// carry an empty-text parent.
func WriteRecordsCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		parent := ""
		if r.ParentID != nil {
			parent = strconv.FormatInt(*r.ParentID, 10)
		}
		row := []string{
			r.NodeText,
			r.ParentText,
			unixSeconds(r.CreationTime),
			strconv.Itoa(r.Depth),
			strconv.FormatInt(r.NodeID, 10),
			parent,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func unixSeconds(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/1000)
}
