package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

// ErrorCode returns the category of the outermost util.Error in err's chain, or ErrInternalServerError.
func ErrorCode(err error) error {
	var uerr *Error
	if errors.As(err, &uerr) && uerr.code != nil {
		return uerr.code
	}
	return ErrInternalServerError
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrNotFound            = errors.New("your requested Item is not found")
	ErrBadParamInput       = errors.New("given Param is not valid")
)

// route inspection failures. none of these are worth retrying, the input graph does not change between attempts.
var (
	ErrDisconnectedGraph            = errors.New("graph is disconnected")
	ErrNonEulerianAfterAugmentation = errors.New("graph is not eulerian after augmentation")
	ErrNotEulerian                  = errors.New("graph is not eulerian")
	ErrMissingEdgeAttribute         = errors.New("edge attribute missing")
	ErrInvalidCoordinate            = errors.New("invalid coordinate")
	ErrUnknownMode                  = errors.New("unknown matching mode")
	ErrUnknownUnit                  = errors.New("unknown distance unit")
)

var MessageInternalServerError string = "internal server error"

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func StringToFloat64(str string) (float64, error) {
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return val, nil
}

// FormatFloat. shortest representation that parses back to the same float64.
func FormatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr))
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

// ReadLine reads one line without the trailing newline. io.EOF is returned only when nothing was read.
func ReadLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
