package models

import (
	"bytes"
	"fmt"
	"strconv"
)

// ID is the single integer identifier type used for users, peers and
// messages. The backend is not consistent about encoding ids: most come
// back as JSON numbers, but bigint-backed columns (postulations, some
// foreign keys) arrive as strings. Both forms decode into an ID.
type ID int

// UnmarshalJSON accepts a JSON number, a quoted numeric string, or null.
func (i *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	if len(data) == 0 {
		*i = 0
		return nil
	}
	parsed, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", string(data), err)
	}
	*i = ID(parsed)
	return nil
}

func (i ID) String() string {
	return strconv.Itoa(int(i))
}
