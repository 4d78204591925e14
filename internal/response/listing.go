package response

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// шаблон html-страницы со списком содержимого каталога
const listingPage = `<html><head><title>Directory Listing</title><style>
body { font-family: Arial, sans-serif; margin: 20px; padding: 0; }
h1 { color: #333; }
ul { list-style-type: none; padding: 0; }
li { margin-bottom: 10px; }
a { text-decoration: none; color: #007bff; font-size: 16px; }
a:hover { text-decoration: underline; color: #0056b3; }
</style></head><body>
<h1>Directory Listing</h1>
<ul>{{if .Parent}}<li><a href="{{.Parent}}">Go back up a directory</a></li>
{{end}}{{range .Entries}}<li><a href="{{.Href}}">{{.Name}}</a></li>
{{end}}</ul></body></html>`

var listingTemplate = template.Must(template.New("listing").Parse(listingPage))

// listingEntry - один элемент списка содержимого каталога
type listingEntry struct {
	Href string
	Name string
}

// renderListing - формируем html со списком содержимого каталога dirPath;
// в список попадают только непосредственные потомки каталога
func renderListing(rootPath, dirPath, queryPath string) ([]byte, error) {
	type args struct {
		Parent  string
		Entries []listingEntry
	}

	// получаем файлы, находящиеся в каталоге; ReadDir возвращает их отсортированными по имени
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать каталог %q: %w", dirPath, err)
	}

	entries := make([]listingEntry, 0, len(files))

	for _, v := range files {
		// путь до файла относительно корневого каталога - для корректной ссылки
		rel, err := filepath.Rel(rootPath, filepath.Join(dirPath, v.Name()))
		if err != nil {
			return nil, fmt.Errorf("не удалось получить относительный путь для %q: %w", v.Name(), err)
		}

		entries = append(entries, listingEntry{
			Href: "/" + filepath.ToSlash(rel),
			Name: v.Name(),
		})
	}

	// если запрошен не сам корневой каталог,
	// добавляем ссылку на родителя запрошенного, а не канонического, пути
	var parent string
	if queryPath != "" && queryPath != "/" {
		parent = parentHref(queryPath)
	}

	buf := new(bytes.Buffer)
	// применяем шаблон к структуре данных, пишем выходные данные в буфер
	err = listingTemplate.Execute(buf, args{
		Parent:  parent,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// parentHref - ссылка на родительский каталог запрошенного пути
func parentHref(queryPath string) string {
	parent := path.Dir(strings.Trim(queryPath, "/"))
	if parent == "." {
		return "/"
	}

	return "/" + parent
}
