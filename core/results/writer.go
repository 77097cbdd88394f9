package results

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"
)

// checkFileExists is a simple stat check to ensure that the file
// exists at the given path.
func checkFileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// checkIsRegular checks if the file is a regular file, else it's a special
// file (that can't be copied)
func checkIsRegular(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}

	return stat.Mode().IsRegular()
}

// copyFile copies a file from the source to the destination.
// Note: It can only copy regular files.
func copyFile(fromPath string, toPath string) error {
	if !checkIsRegular(fromPath) {
		return fmt.Errorf("%s is not a regular file that can be copied", fromPath)
	}

	source, err := os.Open(fromPath)
	if err != nil {
		return err
	}
	defer source.Close()

	dest, err := os.Create(toPath)
	if err != nil {
		return err
	}
	defer dest.Close()

	_, err = io.Copy(dest, source)

	return err
}

// writeReport marshals the report into JSON and writes it to path
func writeReport(path string, report *Report) error {
	f, err := json.MarshalIndent(report, "", " ")

	if err != nil {
		return err
	}

	return ioutil.WriteFile(path, f, 0644)
}

// WriteReportToFile writes the report as JSON into resultDir, along with a
// copy of the configuration file of the run when there is one. Returns the
// path of the report.
func WriteReportToFile(configPath string, report *Report, resultDir string) (string, error) {
	if !checkFileExists(resultDir) {
		err := os.MkdirAll(resultDir, 0755)
		if err != nil {
			return "", err
		}
	}

	ts := report.Start.Format("20060102T150405")
	if report.Start.IsZero() {
		ts = time.Now().Format("20060102T150405")
	}

	reportPath := filepath.Join(resultDir, fmt.Sprintf("%s_report.json", ts))
	err := writeReport(reportPath, report)
	if err != nil {
		return "", err
	}

	if configPath == "" {
		return reportPath, nil
	}

	return reportPath, copyFile(configPath, filepath.Join(resultDir, fmt.Sprintf("%s_config.yaml", ts)))
}
