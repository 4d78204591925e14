// Package connection - пакет с функциями, которые работают с клиентским соединением
package connection

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/Kostushka/file_server/internal/log"
	"github.com/Kostushka/file_server/internal/querydata"
	"github.com/Kostushka/file_server/internal/response"
)

// BufSize - размер буфера для чтения из клиентского сокета
const BufSize = 4096

// Connection - структура с данными обрабатываемого соединения
type Connection struct {
	conn     *net.TCPConn
	rootPath string
}

// New - создать структуру с данными обрабатываемого соединения
func New(conn *net.TCPConn, rootPath string) *Connection {
	return &Connection{
		conn:     conn,
		rootPath: rootPath,
	}
}

// ProcessingConn - обрабатываем клиентское соединение
func (c *Connection) ProcessingConn() {
	// закрыть клиентское соединение
	defer Close(c.conn, fmt.Sprintf("клиентское соединение %s закрыто", c.conn.RemoteAddr().String()))

	log.Infof("начинается работа с клиентским сокетом %s", c.conn.RemoteAddr().String())

	// получить данные запроса
	data, err := c.readConn()
	if err != nil {
		// по возвращении клиентским сокетом EOF или другой ошибки логируем ошибку,
		// так как не успели вычитать все данные, а клиент уже закрыл сокет
		log.Errorf("%v", err)

		return
	}

	// создать структуру с данными запроса
	query, err := querydata.NewParseQueryData(data)
	if err != nil {
		// некорректный запрос не обслуживаем - соединение закрывается без ответа
		log.Errorf("%v", err)

		return
	}

	// логируем клиентские заголовки
	log.Infof("распарсили данные, поступившие от клиента:")

	log.Infof("\"%v %v %v\" %v %v \"%v\"\n",
		query.Method(), query.Path(), query.Protocol(), c.conn.RemoteAddr().String(),
		query.Header("Host"), query.Header("User-Agent"))

	// формируем полный ответ: статусная строка, заголовки, тело
	resp, err := response.New(c.rootPath, query.Path(), query.Protocol())
	if err != nil {
		// ответ не сформирован - закрываем соединение, не отправляя клиенту ничего
		log.Errorf("не удалось сформировать ответ на запрос %q: %v", query.Path(), err)

		return
	}

	// записать ответ в клиентский сокет
	if _, err := c.conn.Write(resp.Body()); err != nil {
		log.Errorf("ответ не был отправлен клиенту: %v", err)

		return
	}

	log.Infof("клиенту отправлен ответ %q на запрос %q", resp.Status(), resp.QueryPath())
}

// прочитать из клиентского сокета данные в буфер
func (c *Connection) readConn() ([]byte, error) {
	// буфер для чтения из клиентского сокета
	buf := make([]byte, BufSize)

	var data []byte
	// пока клиентский сокет пишет, читаем в буфер
	for {
		n, err := c.conn.Read(buf)
		// обрабатываем ошибку при чтении
		if err != nil {
			// не успели вычитать все данные, клиент закрыл сокет
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("клиент преждевременно закрыл соединение: %w", err)
			}

			return nil, err
		}
		// добавляем к итоговому срезу считанные в буфер данные
		data = append(data, buf[:n]...)

		// по возвращении клиентским сокетом пустой строки, перестаем читать
		if bytes.Contains(data, []byte("\r\n\r\n")) || bytes.Contains(data, []byte("\n\n")) {
			break
		}
	}

	return data, nil
}

// Close - закрытие файла или соединения
func Close(c io.Closer, m string) {
	err := c.Close()
	if err != nil {
		log.Errorf("%v", err)

		return
	}

	if m != "" {
		log.Infof("%s", m)
	}
}
