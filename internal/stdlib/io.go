package stdlib

import (
	"bufio"
	"fmt"
	"os"

	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

var stdinReader = bufio.NewReader(os.Stdin)

// buildIO implements std:io — print, input, readFile, writeFile,
// appendFile, fileExists, deleteFile (original_source/src/stdlib/
// io_module.h).
func buildIO() (*runtime.Environment, error) {
	env := runtime.New()

	native(env, "print", -1, simple(func(args []value.Value) (value.Value, error) {
		parts := make([]any, len(args))
		for i, a := range args {
			parts[i] = value.Render(a)
		}
		fmt.Println(parts...)
		return value.Nil, nil
	}))

	native(env, "input", 0, simple(func(args []value.Value) (value.Value, error) {
		line, err := stdinReader.ReadString('\n')
		if err != nil && line == "" {
			return value.Nil, nil
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		return value.String(line), nil
	}))

	native(env, "readFile", 1, simple(func(args []value.Value) (value.Value, error) {
		path, err := asString("readFile", args[0])
		if err != nil {
			return nil, err
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, nyxerrorsNative("readFile: %s", rerr)
		}
		return value.String(data), nil
	}))

	native(env, "writeFile", 2, simple(func(args []value.Value) (value.Value, error) {
		path, err := asString("writeFile", args[0])
		if err != nil {
			return nil, err
		}
		content, err := asString("writeFile", args[1])
		if err != nil {
			return nil, err
		}
		if werr := os.WriteFile(path, []byte(content), 0o644); werr != nil {
			return nil, nyxerrorsNative("writeFile: %s", werr)
		}
		return value.Nil, nil
	}))

	native(env, "appendFile", 2, simple(func(args []value.Value) (value.Value, error) {
		path, err := asString("appendFile", args[0])
		if err != nil {
			return nil, err
		}
		content, err := asString("appendFile", args[1])
		if err != nil {
			return nil, err
		}
		f, oerr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if oerr != nil {
			return nil, nyxerrorsNative("appendFile: %s", oerr)
		}
		defer f.Close()
		if _, werr := f.WriteString(content); werr != nil {
			return nil, nyxerrorsNative("appendFile: %s", werr)
		}
		return value.Nil, nil
	}))

	native(env, "fileExists", 1, simple(func(args []value.Value) (value.Value, error) {
		path, err := asString("fileExists", args[0])
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(path)
		return value.Bool(statErr == nil), nil
	}))

	native(env, "deleteFile", 1, simple(func(args []value.Value) (value.Value, error) {
		path, err := asString("deleteFile", args[0])
		if err != nil {
			return nil, err
		}
		if rerr := os.Remove(path); rerr != nil {
			return nil, nyxerrorsNative("deleteFile: %s", rerr)
		}
		return value.Nil, nil
	}))

	return env, nil
}
