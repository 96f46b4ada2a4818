package testhelpers

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// LogFixture is one commit served by the fake svn log
type LogFixture struct {
	Revision int
	Author   string
	Date     string
	Message  string
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// InfoXML renders an `svn info --xml` report
func InfoXML(url, root string, revision int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<info>
<entry kind="dir" path="." revision="%d">
<url>%s</url>
<repository>
<root>%s</root>
</repository>
</entry>
</info>
`, revision, escape(url), escape(root))
}

// StatusXML renders an `svn status --xml` report listing modified paths
func StatusXML(modified ...string) string {
	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<status>\n<target path=\".\">\n")
	for _, path := range modified {
		fmt.Fprintf(&b, "<entry path=\"%s\">\n<wc-status item=\"modified\" props=\"none\"/>\n</entry>\n", escape(path))
	}
	b.WriteString("</target>\n</status>\n")
	return b.String()
}

// LogXML renders an `svn log --xml` report. Entries are written in the order given,
// which for svn is newest first.
func LogXML(entries ...LogFixture) string {
	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<log>\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "<logentry revision=\"%d\">\n<author>%s</author>\n<date>%s</date>\n<msg>%s</msg>\n</logentry>\n",
			e.Revision, escape(e.Author), escape(e.Date), escape(e.Message))
	}
	b.WriteString("</log>\n")
	return b.String()
}

// CopyRevisionXML renders `svn log --xml -v -r N` for the revision that created
// branchPath by copying copyFrom
func CopyRevisionXML(revision int, branchPath, copyFrom string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<log>
<logentry revision="%d">
<author>creator</author>
<date>2024-01-01T00:00:00.000000Z</date>
<paths>
<path kind="dir" copyfrom-path="%s" copyfrom-rev="%d" action="A">%s</path>
</paths>
<msg>Create branch</msg>
</logentry>
</log>
`, revision, escape(copyFrom), revision-1, escape(branchPath))
}
