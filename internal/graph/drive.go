package graph

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// DriveFile identifies a discovered file well enough to read it back
// regardless of which drive (personal or group) it lives in.
type DriveFile struct {
	DriveID string
	ItemID  string
	Name    string
}

type driveItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ParentReference struct {
		DriveID string `json:"driveId"`
	} `json:"parentReference"`
}

type driveItemList struct {
	Value []driveItem `json:"value"`
}

type groupList struct {
	Value []struct {
		ID string `json:"id"`
	} `json:"value"`
}

// SearchDriveFiles looks for files matching the name hint in the personal
// drive and in every group drive the identity belongs to. A store that
// cannot be searched contributes nothing instead of failing the whole
// discovery; results are deduplicated by drive and item ID.
func (c *Client) SearchDriveFiles(ctx context.Context, hint string, logger *slog.Logger) ([]DriveFile, error) {
	if logger == nil {
		logger = slog.Default()
	}
	q := url.PathEscape(hint)

	var out []DriveFile
	seen := make(map[string]struct{})
	add := func(items []driveItem) {
		for _, it := range items {
			key := it.ParentReference.DriveID + "/" + it.ID
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, DriveFile{
				DriveID: it.ParentReference.DriveID,
				ItemID:  it.ID,
				Name:    it.Name,
			})
		}
	}

	var personal driveItemList
	if err := c.doJSON(ctx, http.MethodGet, "/me/drive/root/search(q='"+q+"')", nil, &personal); err != nil {
		logger.Warn("personal drive search failed", "hint", hint, "err", err)
	} else {
		add(personal.Value)
	}

	var groups groupList
	if err := c.doJSON(ctx, http.MethodGet, "/me/memberOf/microsoft.graph.group?$select=id", nil, &groups); err != nil {
		logger.Warn("group membership lookup failed", "err", err)
		return out, nil
	}
	for _, g := range groups.Value {
		var items driveItemList
		path := "/groups/" + url.PathEscape(g.ID) + "/drive/root/search(q='" + q + "')"
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
			logger.Warn("group drive search failed", "group", g.ID, "err", err)
			continue
		}
		add(items.Value)
	}
	return out, nil
}

type worksheetList struct {
	Value []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"value"`
}

type usedRange struct {
	Text [][]any `json:"text"`
}

// FirstWorksheetUsedRange reads the used range of the file's first
// worksheet and returns the cell text as strings.
func (c *Client) FirstWorksheetUsedRange(ctx context.Context, f DriveFile) ([][]string, error) {
	base := "/drives/" + url.PathEscape(f.DriveID) + "/items/" + url.PathEscape(f.ItemID) + "/workbook/worksheets"

	var sheets worksheetList
	if err := c.doJSON(ctx, http.MethodGet, base, nil, &sheets); err != nil {
		return nil, fmt.Errorf("list worksheets of %s: %w", f.Name, err)
	}
	if len(sheets.Value) == 0 {
		return nil, nil
	}

	var rng usedRange
	path := base + "/" + url.PathEscape(sheets.Value[0].ID) + "/usedRange?$select=text"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &rng); err != nil {
		return nil, fmt.Errorf("read used range of %s: %w", f.Name, err)
	}

	rows := make([][]string, len(rng.Text))
	for i, r := range rng.Text {
		rows[i] = make([]string, len(r))
		for j, cell := range r {
			if s, ok := cell.(string); ok {
				rows[i][j] = s
			} else if cell != nil {
				rows[i][j] = fmt.Sprint(cell)
			}
		}
	}
	return rows, nil
}
