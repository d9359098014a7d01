package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// nextDataID is the element id Next.js uses for its embedded page-state
// JSON payload. Ad dashboards built on that framework ship the report
// data inside it even when the visible markup has no <table>.
const nextDataID = "__NEXT_DATA__"

// extractHTML finds candidate tables in a markup document. Strategy 1:
// every self-contained <table> region, parsed independently. Strategy 2
// (only when strategy 1 yields nothing): the embedded structured-data
// script payload, searched recursively for record lists.
func extractHTML(data []byte) ([]Table, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var tables []Table
	walkNodes(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if t, ok := tableFromNode(n, len(tables)); ok {
				tables = append(tables, t)
			}
		}
	})
	if len(tables) > 0 {
		return tables, nil
	}

	payload := findScriptByID(doc, nextDataID)
	if payload == "" {
		return nil, nil
	}
	return tablesFromJSON([]byte(payload))
}

func walkNodes(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, visit)
	}
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func findScriptByID(doc *html.Node, id string) string {
	var payload string
	walkNodes(doc, func(n *html.Node) {
		if payload != "" || n.Type != html.ElementNode || n.Data != "script" {
			return
		}
		if attrValue(n, "id") != id {
			return
		}
		payload = nodeText(n)
	})
	return strings.TrimSpace(payload)
}

// nodeText concatenates all text content under a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	walkNodes(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// tableFromNode converts a <table> element into a Table. The first row
// supplies the headers; remaining rows become data cells.
func tableFromNode(table *html.Node, idx int) (Table, bool) {
	var rows [][]string
	walkNodes(table, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "tr" {
			return
		}
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				cells = append(cells, strings.TrimSpace(nodeText(c)))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Table{}, false
	}
	return Table{
		Name:    fmt.Sprintf("table-%d", idx+1),
		Columns: rows[0],
		Rows:    rows[1:],
	}, true
}

// tablesFromJSON depth-first searches a decoded JSON tree for lists of
// uniform-shaped records: at least one record, at least three distinct
// field names. Each such list becomes a candidate table with columns
// renamed to canonical display labels where an alias matches.
func tablesFromJSON(payload []byte) ([]Table, error) {
	var root interface{}
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("parse embedded payload: %w", err)
	}
	var tables []Table
	walkJSON(root, &tables)
	return tables, nil
}

// walkJSON recurses with explicit type-tag dispatch over the generic
// map/list/scalar tree; matched record lists are not descended into.
func walkJSON(v interface{}, out *[]Table) {
	switch node := v.(type) {
	case []interface{}:
		if t, ok := tableFromRecords(node, len(*out)); ok {
			*out = append(*out, t)
			return
		}
		for _, child := range node {
			walkJSON(child, out)
		}
	case map[string]interface{}:
		// Sorted keys keep discovery order deterministic.
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkJSON(node[k], out)
		}
	}
}

// tableFromRecords converts a list of JSON objects into a Table when it
// looks like tabular data (>=1 record, >=3 distinct columns).
func tableFromRecords(list []interface{}, idx int) (Table, bool) {
	if len(list) == 0 {
		return Table{}, false
	}
	records := make([]map[string]interface{}, 0, len(list))
	keySet := map[string]bool{}
	for _, item := range list {
		rec, ok := item.(map[string]interface{})
		if !ok {
			return Table{}, false
		}
		records = append(records, rec)
		for k := range rec {
			keySet[k] = true
		}
	}
	if len(keySet) < 3 {
		return Table{}, false
	}

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	columns := make([]string, len(keys))
	used := map[string]bool{}
	for i, k := range keys {
		columns[i] = k
		if f := matchField(NormalizeHeader(k)); f != "" && !used[string(f)] {
			columns[i] = displayLabels[f]
			used[string(f)] = true
		}
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(keys))
		for j, k := range keys {
			row[j] = scalarString(rec[k])
		}
		rows[i] = row
	}
	return Table{
		Name:    fmt.Sprintf("records-%d", idx+1),
		Columns: columns,
		Rows:    rows,
	}, true
}

func scalarString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		b, _ := json.Marshal(s)
		return string(b)
	}
}
