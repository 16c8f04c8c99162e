package functional

import (
	"fmt"

	"github.com/go-faker/faker/v4"
)

// record is the fixed-size object the functional tests keep inside pool blocks
type record struct {
	id      uint32
	payload [28]byte
}

const recordSize = 32

func randomSentence() string {
	quote := struct {
		Sentence string `faker:"sentence"`
	}{}

	err := faker.FakeData(&quote)
	if err != nil {
		fmt.Println(err)
		return ""
	}

	return quote.Sentence
}

func newRecord(id uint32) record {
	r := record{id: id}
	copy(r.payload[:], randomSentence())
	return r
}
