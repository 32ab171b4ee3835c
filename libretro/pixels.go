// This file is part of Motifplay.
//
// Motifplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Motifplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Motifplay.  If not, see <https://www.gnu.org/licenses/>.

package libretro

// convertFrame converts a captured core frame into a 256x256 RGBA8 buffer,
// top-left aligned. Pixels outside the frame are black.
func convertFrame(rgba []byte, frame []byte, width int, height int, pitch int, format int32) {
	for i := range rgba {
		rgba[i] = 0
	}

	if len(frame) == 0 || pitch <= 0 {
		return
	}

	bpp := 2
	if format == pixelFormatXRGB8888 {
		bpp = 4
	}

	if width > ImageWidth {
		width = ImageWidth
	}
	if height > ImageHeight {
		height = ImageHeight
	}

	for y := 0; y < height && y*pitch < len(frame); y++ {
		row := frame[y*pitch:]

		w := width
		if w > len(row)/bpp {
			w = len(row) / bpp
		}

		out := rgba[y*ImageWidth*4:]
		for x := 0; x < w; x++ {
			var r, g, b byte

			switch format {
			case pixelFormatXRGB8888:
				// little-endian XRGB8888: B G R X in memory
				b = row[x*4+0]
				g = row[x*4+1]
				r = row[x*4+2]

			case pixelFormatRGB565:
				p := uint16(row[x*2]) | uint16(row[x*2+1])<<8
				r = expand5(byte(p >> 11 & 0x1f))
				g = expand6(byte(p >> 5 & 0x3f))
				b = expand5(byte(p & 0x1f))

			case pixelFormat0RGB1555:
				p := uint16(row[x*2]) | uint16(row[x*2+1])<<8
				r = expand5(byte(p >> 10 & 0x1f))
				g = expand5(byte(p >> 5 & 0x1f))
				b = expand5(byte(p & 0x1f))
			}

			out[x*4+0] = r
			out[x*4+1] = g
			out[x*4+2] = b
			out[x*4+3] = 0xff
		}
	}
}

// expand5 widens a 5 bit channel to 8 bits, replicating the top bits into
// the bottom so that full intensity maps to 0xff.
func expand5(v byte) byte {
	return v<<3 | v>>2
}

// expand6 widens a 6 bit channel to 8 bits.
func expand6(v byte) byte {
	return v<<2 | v>>4
}
