// Package querydata - пакет для разбора данных клиентского запроса
package querydata

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidHTTPReq - запрос не соответствует формату HTTP
var ErrInvalidHTTPReq = errors.New("incorrect request format: not HTTP")

// заголовки запроса
type requestHeaders map[string]string

// QueryData - разобранные строка запроса и заголовки
type QueryData struct {
	method   string
	path     string
	protocol string
	headers  requestHeaders
}

// Method - возвращает метод запроса
func (q *QueryData) Method() string {
	return q.method
}

// Path - возвращает запрошенный путь
func (q *QueryData) Path() string {
	return q.path
}

// Protocol - возвращает версию протокола
func (q *QueryData) Protocol() string {
	return q.protocol
}

// Header - возвращает значение заголовка запроса по имени
func (q *QueryData) Header(name string) string {
	return q.headers[name]
}

// NewParseQueryData - разбираем строку запроса в структуру, заголовки - в map
func NewParseQueryData(data []byte) (*QueryData, error) {
	q := QueryData{
		headers: make(requestHeaders, 5),
	}

	// парсим строку запроса в структуру
	endQueryString, err := q.parseQueryString(data)
	if err != nil {
		return nil, err
	}
	// парсим заголовки в map
	q.parseRequestHeaders(data, endQueryString)

	return &q, nil
}

// парсим строку запроса в структуру
func (q *QueryData) parseQueryString(data []byte) (int, error) {
	// читаем строку из буфера
	var queryBuf strings.Builder

	var i int
	// в конце строки ожидаем либо \r\n, либо \n
	for i = 0; i < len(data) && data[i] != '\r' && data[i] != '\n'; i++ {
		if err := queryBuf.WriteByte(data[i]); err != nil {
			return 0, fmt.Errorf("не удалось распарсить строку запроса: %w", err)
		}
	}
	// строка запроса должна завершаться переводом строки
	if i == len(data) {
		return 0, fmt.Errorf("не удалось распарсить строку запроса: %w", ErrInvalidHTTPReq)
	}
	// если в конце строки \r\n - пропускаем два символа для перехода на новую строку
	if data[i] == '\r' {
		i++
	}
	i++

	// парсим строку запроса
	buf := strings.Split(trimQueryStringSpace(queryBuf.String()), " ")
	// в буфере должно быть 3 элемента: метод, путь, версия протокола
	if len(buf) < 3 {
		return 0, fmt.Errorf("не удалось распарсить строку запроса: %w", ErrInvalidHTTPReq)
	}
	// декодируем path на случай, если он не в латинице
	convertPath, err := url.QueryUnescape(buf[1])
	if err != nil {
		return 0, fmt.Errorf("не удалось распарсить строку запроса: %w", err)
	}

	q.method = buf[0]
	q.path = convertPath
	q.protocol = buf[2]

	return i, nil
}

// парсим заголовки в map
func (q *QueryData) parseRequestHeaders(data []byte, i int) {
	// парсим заголовки
	headerBuf := data[i:]
	buf := strings.Split(string(headerBuf), "\r\n")
	// если в конце строки не \r\n, а \n
	if len(buf) == 1 {
		buf = strings.Split(string(headerBuf), "\n")
	}
	// в конце после заголовков ожидаем пустую строку
	for j := 0; j < len(buf) && buf[j] != ""; j++ {
		sepIndex := strings.Index(buf[j], ":")
		if sepIndex == -1 {
			continue
		}

		q.headers[buf[j][:sepIndex]] = strings.TrimSpace(buf[j][sepIndex+1:])
	}
}

// учитываем, что строка запроса может содержать более одного пробела, например:
// GET        /                HTTP/1.1
// удаляем лишние пробелы
func trimQueryStringSpace(str string) string {
	var prev byte

	var i int
	// для эффективного прирощения строки используем strings.Builder - по сути срез и append
	var res strings.Builder

	for ; i < len(str); i++ {
		if str[i] == prev && prev == ' ' {
			continue
		}

		prev = str[i]

		res.WriteByte(str[i])
	}

	return res.String()
}
