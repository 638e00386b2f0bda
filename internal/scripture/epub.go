package scripture

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// EPUBSource serves chapter text from a local EPUB Bible, matched through
// the book's NCX table of contents. The translation argument is ignored:
// the file is whatever edition it is.
type EPUBSource struct {
	path string
}

// NewEPUBSource wraps an EPUB file as a chapter source.
func NewEPUBSource(path string) *EPUBSource {
	return &EPUBSource{path: path}
}

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// ChapterText locates the TOC entry labeled like "Genesis 1" (or
// "Genesis Chapter 1") and extracts the text of its spine document.
func (s *EPUBSource) ChapterText(ctx context.Context, book string, chapter int, translation string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rc, err := epub.OpenReader(s.path)
	if err != nil {
		return "", fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return "", fmt.Errorf("no rootfiles found in epub %s", s.path)
	}
	root := rc.Rootfiles[0]

	ncxData, err := findAndReadNCX(s.path, root)
	if err != nil {
		return "", err
	}

	var toc ncx
	if err := xml.Unmarshal(ncxData, &toc); err != nil {
		return "", fmt.Errorf("parse NCX: %w", err)
	}

	href := findChapterHref(toc.NavMap.NavPoints, book, chapter)
	if href == "" {
		return "", fmt.Errorf("chapter %s %d not found in %s", book, chapter, s.path)
	}

	text, err := readSpineItem(root, href)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("chapter %s %d is empty in %s", book, chapter, s.path)
	}
	return text, nil
}

// findChapterHref walks the nav tree for an entry matching book+chapter.
func findChapterHref(points []navPoint, book string, chapter int) string {
	for _, np := range points {
		if matchesChapter(np.Label.Text, book, chapter) {
			return np.Content.Src
		}
		if href := findChapterHref(np.Children, book, chapter); href != "" {
			return href
		}
	}
	return ""
}

// matchesChapter reports whether a TOC label names the given chapter.
// Labels vary across editions: "Genesis 1", "Genesis Chapter 1",
// "The First Book of Moses, called Genesis 1". The label must contain the
// book name and carry the chapter as its own numeric token.
func matchesChapter(label, book string, chapter int) bool {
	label = normalizeLabel(label)
	book = normalizeLabel(book)
	if !strings.Contains(label, book) {
		return false
	}
	want := strconv.Itoa(chapter)
	for _, tok := range strings.Fields(label) {
		if tok == want {
			return true
		}
	}
	return false
}

func normalizeLabel(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// readSpineItem opens the manifest item the href points at and flattens it
// to text.
func readSpineItem(root *epub.Rootfile, href string) (string, error) {
	base := href
	if idx := strings.Index(base, "#"); idx != -1 {
		base = base[:idx]
	}

	for _, item := range root.Manifest.Items {
		if item.HREF != base && path.Base(item.HREF) != path.Base(base) {
			continue
		}
		r, err := item.Open()
		if err != nil {
			return "", fmt.Errorf("open spine item %s: %w", base, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return "", fmt.Errorf("read spine item %s: %w", base, err)
		}
		return extractText(string(data)), nil
	}

	return "", fmt.Errorf("spine item %s not found", base)
}

func findAndReadNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}

	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}

	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}
