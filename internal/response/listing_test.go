package response

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const backLinkText = "Go back up a directory"

// собираем из html-страницы ссылки списка: текст -> href
func parseListing(t *testing.T, page []byte) (links map[string]string, backLinks []string) {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		t.Fatalf("не удалось распарсить html: %v", err)
	}

	links = make(map[string]string)

	doc.Find("li a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			t.Errorf("у ссылки %q нет атрибута href", s.Text())
		}

		if s.Text() == backLinkText {
			backLinks = append(backLinks, href)
			return
		}

		if _, exists := links[s.Text()]; exists {
			t.Errorf("ссылка %q встречается в списке более одного раза", s.Text())
		}

		links[s.Text()] = href
	})

	return links, backLinks
}

// дерево каталогов для тестов списка:
// root/a.txt, root/b.txt, root/.hidden, root/sub/nested.txt, root/sub/inner/deep.txt
func makeListingRoot(t *testing.T) string {
	t.Helper()

	rootPath := t.TempDir()

	for _, dir := range []string{
		filepath.Join(rootPath, "sub"),
		filepath.Join(rootPath, "sub", "inner"),
	} {
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	for _, name := range []string{
		filepath.Join(rootPath, "a.txt"),
		filepath.Join(rootPath, "b.txt"),
		filepath.Join(rootPath, ".hidden"),
		filepath.Join(rootPath, "sub", "nested.txt"),
		filepath.Join(rootPath, "sub", "inner", "deep.txt"),
	} {
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	return rootPath
}

// список корневого каталога: все непосредственные потомки, без ссылки наверх
func TestListingRoot(t *testing.T) {
	rootPath := makeListingRoot(t)

	resp, err := New(rootPath, "/", "HTTP/1.1")
	if err != nil {
		t.Fatalf("New вернул ошибку: %v", err)
	}

	if resp.Status() != StatusOK {
		t.Errorf("статус %v, ожидался %v", resp.Status(), StatusOK)
	}

	if resp.AcceptRanges() != RangesNone {
		t.Errorf("accept-ranges %v, ожидался %v", resp.AcceptRanges(), RangesNone)
	}

	head, body := splitResponse(t, resp.Body())

	if !strings.Contains(head, "Content-Type: text/html") {
		t.Errorf("в заголовках %q нет Content-Type: text/html", head)
	}

	links, backLinks := parseListing(t, body)

	want := map[string]string{
		"a.txt":   "/a.txt",
		"b.txt":   "/b.txt",
		".hidden": "/.hidden",
		"sub":     "/sub",
	}
	if len(links) != len(want) {
		t.Errorf("в списке %d ссылок, ожидалось %d: %v", len(links), len(want), links)
	}

	for name, href := range want {
		if links[name] != href {
			t.Errorf("ссылка для %q: %q, ожидалась %q", name, links[name], href)
		}
	}

	// потомки потомков в список не попадают
	if _, exists := links["nested.txt"]; exists {
		t.Errorf("в списке корня не должно быть содержимого вложенных каталогов")
	}

	if len(backLinks) != 0 {
		t.Errorf("в списке корня не должно быть ссылки наверх, найдено %d", len(backLinks))
	}
}

// список вложенного каталога: потомки и ровно одна ссылка на родителя запрошенного пути
func TestListingSubdir(t *testing.T) {
	rootPath := makeListingRoot(t)

	tests := []struct {
		name      string
		queryPath string
		wantLinks map[string]string
		wantBack  string
	}{
		{
			name:      "каталог первого уровня",
			queryPath: "/sub",
			wantLinks: map[string]string{
				"nested.txt": "/sub/nested.txt",
				"inner":      "/sub/inner",
			},
			wantBack: "/",
		},
		{
			name:      "каталог второго уровня",
			queryPath: "/sub/inner",
			wantLinks: map[string]string{
				"deep.txt": "/sub/inner/deep.txt",
			},
			wantBack: "/sub",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := New(rootPath, tt.queryPath, "HTTP/1.1")
			if err != nil {
				t.Fatalf("New вернул ошибку: %v", err)
			}

			_, body := splitResponse(t, resp.Body())

			links, backLinks := parseListing(t, body)

			if len(links) != len(tt.wantLinks) {
				t.Errorf("в списке %d ссылок, ожидалось %d: %v", len(links), len(tt.wantLinks), links)
			}

			for name, href := range tt.wantLinks {
				if links[name] != href {
					t.Errorf("ссылка для %q: %q, ожидалась %q", name, links[name], href)
				}
			}

			if len(backLinks) != 1 {
				t.Fatalf("ссылок наверх %d, ожидалась ровно одна", len(backLinks))
			}

			if backLinks[0] != tt.wantBack {
				t.Errorf("ссылка наверх %q, ожидалась %q", backLinks[0], tt.wantBack)
			}
		})
	}
}

// заголовок страницы списка
func TestListingTitle(t *testing.T) {
	rootPath := makeListingRoot(t)

	resp, err := New(rootPath, "/", "HTTP/1.1")
	if err != nil {
		t.Fatalf("New вернул ошибку: %v", err)
	}

	_, body := splitResponse(t, resp.Body())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("не удалось распарсить html: %v", err)
	}

	if got := doc.Find("h1").Text(); got != "Directory Listing" {
		t.Errorf("заголовок страницы %q, ожидался %q", got, "Directory Listing")
	}
}

// имена файлов с html-разметкой экранируются шаблоном
func TestListingEscapesNames(t *testing.T) {
	rootPath := t.TempDir()

	name := "a<i>b.txt"
	if err := os.WriteFile(filepath.Join(rootPath, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	resp, err := New(rootPath, "/", "HTTP/1.1")
	if err != nil {
		t.Fatalf("New вернул ошибку: %v", err)
	}

	_, body := splitResponse(t, resp.Body())

	if bytes.Contains(body, []byte("<i>")) {
		t.Errorf("имя файла попало в html без экранирования: %q", body)
	}

	links, _ := parseListing(t, body)
	if _, exists := links[name]; !exists {
		t.Errorf("в списке нет файла %q: %v", name, links)
	}
}
