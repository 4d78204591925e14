// Package log - пакет с логерами для вывода информационных сообщений и ошибок
package log

import (
	"log"
	"os"

	"github.com/fatih/color"
)

var infoLog *log.Logger
var errorLog *log.Logger

const permissions = 0644

// New - создаем логеры
func New(logFile string) error {
	// создаем логеры, пишущие в stdout;
	// на терминале префиксы уровней подсвечиваем цветом
	if logFile == "" {
		infoLog = log.New(os.Stdout, color.GreenString("INFO: "), log.Ldate|log.Ltime)
		errorLog = log.New(os.Stderr, color.RedString("ERROR: "), log.Ldate|log.Ltime)
		return nil
	}
	// создаем файл для записи лога
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permissions)
	if err != nil {
		return err
	}
	// создаем логеры, пишущие в файл; файл - не терминал, префиксы без цвета
	infoLog = log.New(f, "INFO: ", log.Ldate|log.Ltime)
	errorLog = log.New(f, "ERROR: ", log.Ldate|log.Ltime)
	return nil
}

// Infof - пишет информационный лог
func Infof(format string, v ...any) {
	infoLog.Printf(format, v...)
}

// Errorf - пишет лог ошибки
func Errorf(format string, v ...any) {
	errorLog.Printf(format, v...)
}
