package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
)

var MainRouter string
var Download string
var DeviceName string
var HistoryDepth int
var MainConfig Config

type Config struct {
	XMLName      xml.Name `xml:"config"`
	MainRouter   string   `xml:"MainRouter"`
	Download     string   `xml:"download"`
	DeviceName   string   `xml:"DeviceName"`
	HistoryDepth string   `xml:"HistoryDepth"`
}

func init() {
	// 没有config.xml时用默认值，HistoryDepth为0表示不限制历史深度
	MainRouter = "0.0.0.0:8436"
	Download = "./Data"
	DeviceName = "本地"
	HistoryDepth = 0

	xmlFile, err := os.Open("config.xml")
	if err != nil {
		fmt.Println("Error  opening  file:", err)
		return
	}
	defer xmlFile.Close()

	xmlDecoder := xml.NewDecoder(xmlFile)
	err = xmlDecoder.Decode(&MainConfig)
	if err != nil {
		fmt.Println("Error  decoding  XML:", err)
		return
	}
	if MainConfig.MainRouter != "" {
		MainRouter = MainConfig.MainRouter
	}
	if MainConfig.Download != "" {
		Download = MainConfig.Download
	}
	if MainConfig.DeviceName != "" {
		DeviceName = MainConfig.DeviceName
	}
	if MainConfig.HistoryDepth != "" {
		if n, err := strconv.Atoi(MainConfig.HistoryDepth); err == nil && n >= 0 {
			HistoryDepth = n
		}
	}
}
