// Package response - пакет, формирующий полный HTTP-ответ на запрос файлового ресурса:
// содержимое файла с определенным по магическим байтам типом,
// html со списком содержимого каталога или страница с ошибкой
package response

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// Status - статус ответа
type Status int

const (
	// StatusOK - ресурс найден и отдан
	StatusOK Status = iota
	// StatusNotFound - ресурс не найден
	StatusNotFound
)

// String - текст статусной строки ответа
func (s Status) String() string {
	if s == StatusOK {
		return "200 OK"
	}

	return "404 NOT FOUND"
}

// AcceptRanges - индикатор поддержки запросов диапазонов
type AcceptRanges int

const (
	// RangesNone - диапазоны не поддерживаются
	RangesNone AcceptRanges = iota
	// RangesBytes - диапазоны в байтах
	RangesBytes
)

// String - текст заголовка accept-ranges
func (a AcceptRanges) String() string {
	if a == RangesBytes {
		return "accept-ranges: bytes"
	}

	return "accept-ranges: none"
}

const (
	forbiddenBody = "<html><body><h1>403 Forbidden</h1></body></html>"
	notFoundBody  = "<html><body><h1>404 Not Found</h1></body></html>"

	htmlContentType = "text/html"
)

// Response - сформированный ответ на запрос клиента
type Response struct {
	version       string
	status        Status
	contentLength int
	acceptRanges  AcceptRanges
	body          []byte
	queryPath     string
}

// Version - возвращает версию протокола из запроса
func (r *Response) Version() string {
	return r.version
}

// Status - возвращает статус ответа
func (r *Response) Status() Status {
	return r.status
}

// ContentLength - возвращает размер содержимого в байтах
func (r *Response) ContentLength() int {
	return r.contentLength
}

// AcceptRanges - возвращает индикатор поддержки диапазонов
func (r *Response) AcceptRanges() AcceptRanges {
	return r.acceptRanges
}

// Body - возвращает полный ответ: статусная строка, заголовки и тело
func (r *Response) Body() []byte {
	return r.body
}

// QueryPath - возвращает запрошенный путь из строки запроса
func (r *Response) QueryPath() string {
	return r.queryPath
}

// New - формируем ответ на запрос пути queryPath относительно корневого каталога rootPath;
// version записывается в статусную строку без изменений
func New(rootPath, queryPath, version string) (*Response, error) {
	// определяем, что запрошено: файл, каталог, несуществующий или внешний путь
	target, err := resolveTarget(rootPath, queryPath)
	if err != nil {
		return nil, err
	}

	resp := Response{
		version:   version,
		queryPath: queryPath,
	}

	switch target.kind {
	// путь вне корневого каталога: доступ запрещен,
	// статусная строка при этом остается 404 - так отвечал исходный сервер
	case targetOutsideRoot:
		resp.status = StatusNotFound
		resp.setBody(htmlContentType, []byte(forbiddenBody))
	// путь не существует
	case targetMissing:
		resp.status = StatusNotFound
		resp.setBody(htmlContentType, []byte(notFoundBody))
	// обычный файл: отдаем содержимое целиком
	case targetFile:
		content, err := os.ReadFile(target.path)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать файл %q: %w", target.path, err)
		}

		resp.status = StatusOK
		resp.acceptRanges = RangesBytes
		// тип определяем по магическим байтам содержимого, не по расширению;
		// для неопознанных байтов Detect возвращает application/octet-stream
		resp.setBody(mimetype.Detect(content).String(), content)
	// каталог: отдаем html со списком его содержимого
	case targetDir:
		listing, err := renderListing(target.rootPath, target.path, queryPath)
		if err != nil {
			return nil, err
		}

		resp.status = StatusOK
		resp.setBody(htmlContentType, listing)
	}

	return &resp, nil
}

// setBody - фиксируем размер готового содержимого и собираем полный ответ
func (r *Response) setBody(contentType string, content []byte) {
	// размер считаем по окончательному содержимому, до формирования заголовков
	r.contentLength = len(content)

	var buf bytes.Buffer
	// разделители строк неоднородны: \n внутри блока заголовков, \r\n\r\n перед телом;
	// исходный сервер формировал ответ именно так, клиенты могут на это полагаться
	fmt.Fprintf(&buf, "%s %s\n%s\nContent-Type: %s\nContent-Length: %d\r\n\r\n",
		r.version, r.status, r.acceptRanges, contentType, r.contentLength)
	buf.Write(content)

	r.body = buf.Bytes()
}
