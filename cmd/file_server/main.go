package main

import (
	stdlog "log"
	"net"

	"github.com/Kostushka/file_server/internal/config"
	"github.com/Kostushka/file_server/internal/connection"
	"github.com/Kostushka/file_server/internal/log"
)

func main() {
	// получаем конфигурационные данные для запуска сервера
	cfg, err := config.NewConfigData()
	if err != nil {
		stdlog.Fatal(err)
	}

	// создаем логеры
	if err := log.New(cfg.Log()); err != nil {
		stdlog.Fatal(err)
	}

	// объявляем структуру с данными будущего сервера
	laddr := net.TCPAddr{
		IP:   cfg.ListenAddress(),
		Port: cfg.Port(),
	}

	// получаем структуру с методами для работы с соединениями
	l, err := net.ListenTCP("tcp", &laddr)
	if err != nil {
		stdlog.Fatal(err)
	}
	defer l.Close()

	log.Infof("Запуск сервера с адресом %v на порту %d", laddr.IP, laddr.Port)

	for {
		log.Infof("tcp сокет слушает соединения")
		// слушаем сокетные соединения (запросы)
		conn, err := l.AcceptTCP()
		if err != nil {
			log.Errorf("%v", err)

			continue
		}

		log.Infof("запрос на соединение от клиента %s принят", conn.RemoteAddr().String())

		// обрабатываем каждое клиентское соединение в отдельной горутине
		go connection.New(conn, cfg.RootPath()).ProcessingConn()
	}
}
