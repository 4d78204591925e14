package response

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// классификация запрошенного пути
type targetKind int

const (
	// targetOutsideRoot - канонический путь лежит вне корневого каталога
	targetOutsideRoot targetKind = iota
	// targetFile - обычный файл внутри корневого каталога
	targetFile
	// targetDir - каталог внутри корневого каталога
	targetDir
	// targetMissing - путь не существует
	targetMissing
)

// resolvedTarget - результат разрешения запрошенного пути
type resolvedTarget struct {
	kind     targetKind
	path     string // канонический путь до запрошенного ресурса
	rootPath string // канонический путь до корневого каталога
}

// resolveTarget - отображаем запрошенный путь на файловую систему и классифицируем его
func resolveTarget(rootPath, queryPath string) (*resolvedTarget, error) {
	// пустой путь и корневой слеш означают сам корневой каталог
	resource := queryPath
	if resource == "" || resource == "/" {
		resource = "."
	}

	joined := filepath.Join(rootPath, resource)

	// канонизируем корневой каталог
	canonRoot, err := canonicalize(rootPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось канонизировать корневой каталог %q: %w", rootPath, err)
	}

	// канонизируем запрошенный путь;
	// несуществующий путь - это 404, остальные ошибки канонизации отдаем вызывающему
	canonTarget, err := canonicalize(joined)
	if errors.Is(err, fs.ErrNotExist) {
		return &resolvedTarget{kind: targetMissing, rootPath: canonRoot}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("не удалось канонизировать путь %q: %w", joined, err)
	}

	// запрошенный путь должен лежать внутри корневого каталога
	if !containsPath(canonRoot, canonTarget) {
		return &resolvedTarget{kind: targetOutsideRoot, rootPath: canonRoot}, nil
	}

	// получить информацию о файле
	fi, err := os.Stat(canonTarget)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить информацию о файле %q: %w", canonTarget, err)
	}

	switch {
	case fi.IsDir():
		return &resolvedTarget{kind: targetDir, path: canonTarget, rootPath: canonRoot}, nil
	case fi.Mode().IsRegular():
		return &resolvedTarget{kind: targetFile, path: canonTarget, rootPath: canonRoot}, nil
	}

	// сокеты, устройства и прочие нерегулярные файлы не отдаем
	return &resolvedTarget{kind: targetMissing, rootPath: canonRoot}, nil
}

// canonicalize - приводим путь к абсолютному виду без символических ссылок и сегментов . и ..
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}

// containsPath - проверяем, что root является предком target по компонентам канонического пути;
// пути с одинаковой глубиной вложенности могут быть не связаны между собой
func containsPath(root, target string) bool {
	if root == target {
		return true
	}

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
