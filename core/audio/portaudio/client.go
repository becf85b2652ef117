package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"
	"github.com/parlarlabs/parlar/core/audio"
)

// Client is a blocking duplex stream on the default input and output
// devices. Each cycle reads one capture buffer, pulls one playback buffer
// from the session, and writes it out.
type Client struct {
	bufferSize   int
	encodingInfo audio.EncodingInfo
	stream       *portaudio.Stream
	pull         func(out []byte)

	in       []int16
	out      []int16
	outBytes []byte
}

func NewClient(encodingInfo audio.EncodingInfo, bufferSize int, pull func(out []byte)) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	in := make([]int16, bufferSize)
	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 1, float64(encodingInfo.SampleRate), bufferSize, in, out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	return &Client{
		bufferSize:   bufferSize,
		encodingInfo: encodingInfo,
		stream:       stream,
		pull:         pull,
		in:           in,
		out:          out,
		outBytes:     make([]byte, bufferSize*2),
	}, nil
}

func (c *Client) Stream(ctx context.Context, onAudio func(audio []byte)) error {
	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := c.stream.Read(); err != nil {
				log.Printf("Failed to read from portaudio stream: %v", err)
			}

			audioBuffer := bytes.Buffer{}
			binary.Write(&audioBuffer, binary.LittleEndian, c.in)
			onAudio(audioBuffer.Bytes())

			c.pull(c.outBytes)
			binary.Read(bytes.NewReader(c.outBytes), binary.LittleEndian, c.out)
			if err := c.stream.Write(); err != nil {
				log.Printf("Failed to write to portaudio stream: %v", err)
			}
		}
	}
}

func (c *Client) Close() {
	c.stream.Close()
	portaudio.Terminate()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return c.encodingInfo
}
