package svn

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// WorkingCopyInfo describes the checkout svn-rebase operates on
type WorkingCopyInfo struct {
	URL            string
	Revision       int
	RepositoryRoot string
}

// Status is the decoded `svn status --xml` report
type Status struct {
	Entries []StatusEntry
}

// StatusEntry is one path reported by svn status
type StatusEntry struct {
	Path string
	Item string // wc-status item: modified, added, unversioned, ...
}

// HasLocalChanges reports whether svn status listed any path
func (s *Status) HasLocalChanges() bool {
	return len(s.Entries) > 0
}

// LogEntry is one revision from an `svn log --xml` report
type LogEntry struct {
	Revision int
	Author   string
	Date     string
	Message  string
	Paths    []ChangedPath
}

// ChangedPath is a path touched by a revision, present with `svn log -v`
type ChangedPath struct {
	Path             string
	Action           string
	Kind             string
	CopyFromPath     string
	CopyFromRevision int
}

// CopyFromPath returns the copy source of the first changed path that has one
func (e *LogEntry) CopyFromPath() (string, bool) {
	for _, p := range e.Paths {
		if p.CopyFromPath != "" {
			return p.CopyFromPath, true
		}
	}
	return "", false
}

type xmlStatus struct {
	XMLName xml.Name    `xml:"status"`
	Targets []xmlTarget `xml:"target"`
}

type xmlTarget struct {
	Path    string           `xml:"path,attr"`
	Entries []xmlStatusEntry `xml:"entry"`
}

type xmlStatusEntry struct {
	Path     string `xml:"path,attr"`
	WCStatus struct {
		Item string `xml:"item,attr"`
	} `xml:"wc-status"`
}

type xmlInfo struct {
	XMLName xml.Name       `xml:"info"`
	Entries []xmlInfoEntry `xml:"entry"`
}

type xmlInfoEntry struct {
	Revision   int    `xml:"revision,attr"`
	URL        string `xml:"url"`
	Repository struct {
		Root string `xml:"root"`
	} `xml:"repository"`
}

type xmlLog struct {
	XMLName xml.Name      `xml:"log"`
	Entries []xmlLogEntry `xml:"logentry"`
}

type xmlLogEntry struct {
	Revision int       `xml:"revision,attr"`
	Author   string    `xml:"author"`
	Date     string    `xml:"date"`
	Msg      string    `xml:"msg"`
	Paths    []xmlPath `xml:"paths>path"`
}

type xmlPath struct {
	Path         string `xml:",chardata"`
	Action       string `xml:"action,attr"`
	Kind         string `xml:"kind,attr"`
	CopyFromPath string `xml:"copyfrom-path,attr"`
	CopyFromRev  int    `xml:"copyfrom-rev,attr"`
}

// ParseStatus decodes an `svn status --xml` report. Only the first target is
// considered, which is the working copy root when svn status runs without arguments.
func ParseStatus(data []byte) (*Status, error) {
	var doc xmlStatus
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	status := &Status{}
	if len(doc.Targets) == 0 {
		return status, nil
	}
	for _, e := range doc.Targets[0].Entries {
		status.Entries = append(status.Entries, StatusEntry{Path: e.Path, Item: e.WCStatus.Item})
	}
	return status, nil
}

// ParseInfo decodes an `svn info --xml` report for a single working copy
func ParseInfo(data []byte) (*WorkingCopyInfo, error) {
	var doc xmlInfo
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Entries) == 0 {
		return nil, fmt.Errorf("info report has no entry")
	}

	entry := doc.Entries[0]
	url := strings.TrimSpace(entry.URL)
	if url == "" {
		return nil, fmt.Errorf("info entry has no url")
	}
	return &WorkingCopyInfo{
		URL:            url,
		Revision:       entry.Revision,
		RepositoryRoot: strings.TrimSpace(entry.Repository.Root),
	}, nil
}

// ParseLog decodes an `svn log --xml` report, keeping svn's order (newest first)
func ParseLog(data []byte) ([]LogEntry, error) {
	var doc xmlLog
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	entries := make([]LogEntry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		entry := LogEntry{
			Revision: e.Revision,
			Author:   e.Author,
			Date:     e.Date,
			Message:  e.Msg,
		}
		for _, p := range e.Paths {
			entry.Paths = append(entry.Paths, ChangedPath{
				Path:             strings.TrimSpace(p.Path),
				Action:           p.Action,
				Kind:             p.Kind,
				CopyFromPath:     p.CopyFromPath,
				CopyFromRevision: p.CopyFromRev,
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
