package model

import "time"

// Record is one flat row of the tabular export: a node and just enough about
// its parent to rebuild the lineage in a spreadsheet.
type Record struct {
	NodeText     string    `json:"nodeText"`
	ParentText   string    `json:"parentText"`
	CreationTime time.Time `json:"creationTime"`
	Depth        int       `json:"depth"`
	NodeID       int64     `json:"nodeId"`
	ParentID     *int64    `json:"parentId,omitempty"`
}

// NodeSnapshot is the exact-restoration form of a node (root included).
type NodeSnapshot struct {
	ID          int64     `json:"id"`
	ParentID    *int64    `json:"parentId,omitempty"`
	BranchIndex int       `json:"branchIndex"`
	Depth       int       `json:"depth"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}
