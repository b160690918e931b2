package qr

import qrcode "github.com/skip2/go-qrcode"

// размер стороны PNG в пикселях
const imageSize = 256

// Encode рендерит QR-код со ссылкой на карточку актива в PNG.
// Низкий уровень коррекции ошибок — коды печатаются на наклейках и
// читаются с близкого расстояния.
func Encode(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Low, imageSize)
}
