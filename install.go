package main

import (
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/kardianos/osext"
	log "github.com/sirupsen/logrus"
)

const serviceFile = `
[Unit]
Description=Software PWM Light Sequencer

[Service]
ExecStart={{.BinPath}} run -c {{ .ConfigFile }}
Restart=on-failure

[Install]
WantedBy=multi-user.target
`

var serviceTmpl = template.Must(template.New("service").Parse(serviceFile))

func copyFile(dstPath, srcPath string, mode os.FileMode) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	err = os.MkdirAll(filepath.Dir(dstPath), 0755)
	if err != nil {
		return err
	}
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	if err != nil {
		return err
	}
	return dst.Close()
}

func install(prefix string, reset bool) error {
	if prefix == "" {
		prefix = "/"
	}
	bPath, err := osext.Executable()
	if err != nil {
		return err
	}

	// the unit runs the installed binary, so it must not carry the prefix
	binPath := "/usr/bin/pwmlights"
	err = copyFile(filepath.Join(prefix, binPath), bPath, 0755)
	if err != nil {
		return err
	}
	log.WithField("Path", filepath.Join(prefix, binPath)).Infoln("installed binary")

	dstPath := filepath.Join(prefix, "usr/lib/systemd/system/pwmlights.service")
	err = os.MkdirAll(filepath.Dir(dstPath), 0755)
	if err != nil {
		return err
	}
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer dst.Close()

	err = serviceTmpl.Execute(dst, struct{ BinPath, ConfigFile string }{binPath, configPath})
	if err != nil {
		return err
	}
	err = dst.Close()
	if err != nil {
		return err
	}
	log.WithField("Path", dstPath).Infoln("installed service")

	dstPath = filepath.Join(prefix, configPath)
	_, err = os.Stat(dstPath)
	if err == nil && !reset {
		log.WithField("Path", dstPath).Infoln("keeping existing config")
		return nil
	}

	err = os.MkdirAll(filepath.Dir(dstPath), 0755)
	if err != nil {
		return err
	}
	cfg, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer cfg.Close()
	_, err = io.WriteString(cfg, configFile)
	if err != nil {
		return err
	}
	log.WithField("Path", dstPath).Infoln("wrote default config")

	return cfg.Close()
}
