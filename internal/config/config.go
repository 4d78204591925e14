// Package config - пакет для получения конфигурационных данных для запуска сервера
package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoRootDir - не указан путь до корневого каталога
	ErrNoRootDir = errors.New("не указан путь до *корневого* каталога")
	// ErrInvalidAddr - указан некорректный IP-адрес
	ErrInvalidAddr = errors.New("указан некорректный IP-адрес")
)

const portNumber = 5000
const defaultAddress = "127.0.0.1"

// Data - данные для конфигурации сервера
type Data struct {
	rootPath      string
	listenAddress net.IP
	port          int
	log           string
}

// RootPath - возвращает путь до корневого каталога
func (c *Data) RootPath() string {
	return c.rootPath
}

// ListenAddress - возвращает адрес, на котором будет запущен сервер
func (c *Data) ListenAddress() net.IP {
	return c.listenAddress
}

// Port - возвращает порт, на котором сервер будет принимать запросы на соединение
func (c *Data) Port() int {
	return c.port
}

// Log - возвращает имя файла для записи лога в него или ”
func (c *Data) Log() string {
	return c.log
}

// fileData - конфигурационные данные, читаемые из yaml файла
type fileData struct {
	RootPath      string `yaml:"root_path"`
	ListenAddress string `yaml:"listen_address"`
	Port          int    `yaml:"port"`
	Log           string `yaml:"log"`
}

// readFile - читаем конфигурационные данные из yaml файла
func readFile(path string) (*fileData, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл конфигурации: %w", err)
	}

	var f fileData
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, fmt.Errorf("не удалось распарсить файл конфигурации: %w", err)
	}

	return &f, nil
}

// flagData - значения флагов до объединения с файлом конфигурации
type flagData struct {
	rootPath      string
	listenAddress string
	port          int
	log           string
}

// merge - данные из файла конфигурации заполняют только флаги, оставленные по умолчанию
func (d *flagData) merge(f *fileData) {
	if d.rootPath == "" {
		d.rootPath = f.RootPath
	}

	if d.listenAddress == defaultAddress && f.ListenAddress != "" {
		d.listenAddress = f.ListenAddress
	}

	if d.port == portNumber && f.Port != 0 {
		d.port = f.Port
	}

	if d.log == "" {
		d.log = f.Log
	}
}

// NewConfigData - функция-конструктор для получения структуры с конфигурационными данными
func NewConfigData() (*Data, error) {
	var d flagData

	// должен быть указан путь до домашнего каталога
	flag.StringVar(&d.rootPath, "path", "", "a path to home directory")

	// должен быть указан адрес, на котором будет запущен сервер
	flag.StringVar(&d.listenAddress, "IP", defaultAddress, "a listening address")

	// должен быть указан порт, на котором сервер будет принимать запросы на соединение
	flag.IntVar(&d.port, "port", portNumber, "a port")

	// должно быть указано имя файла для записи лога в него, иначе вывод лога будет в stdout
	flag.StringVar(&d.log, "log", "", "output log to file")

	// может быть указан путь до yaml файла с конфигурацией
	var configFile string

	flag.StringVar(&configFile, "config", "", "a path to yaml config file")

	flag.Parse()

	if configFile != "" {
		f, err := readFile(configFile)
		if err != nil {
			return nil, err
		}

		d.merge(f)
	}

	// должен быть указан путь до домашнего каталога
	if d.rootPath == "" {
		return nil, ErrNoRootDir
	}

	// IP адрес должен быть корректным
	var addr net.IP
	if addr = net.ParseIP(d.listenAddress); addr == nil {
		return nil, ErrInvalidAddr
	}

	return &Data{
		rootPath:      d.rootPath,
		listenAddress: addr,
		port:          d.port,
		log:           d.log,
	}, nil
}
