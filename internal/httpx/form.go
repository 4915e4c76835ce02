package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"cajj-backend/internal/upload"
	"cajj-backend/internal/validation"
)

// multipart parts beyond this size are spooled to temporary files.
const multipartMemory = 32 << 20

var ErrBodyTooLarge = errors.New("request body too large")

// Form gives uniform access to the fields of a JSON, urlencoded or multipart
// request body. Multipart file parts are exposed through File.
type Form struct {
	values    map[string]string
	files     map[string]*multipart.FileHeader
	multipart *multipart.Form
	opened    []multipart.File
}

// ReadForm parses the request body. maxBytes bounds the whole body; zero
// disables the limit.
func ReadForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*Form, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	f := &Form{
		values: make(map[string]string),
		files:  make(map[string]*multipart.FileHeader),
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, bodyError(err)
		}
		f.multipart = r.MultipartForm
		for key, vals := range r.MultipartForm.Value {
			if len(vals) > 0 {
				f.values[key] = vals[0]
			}
		}
		for key, headers := range r.MultipartForm.File {
			if len(headers) > 0 {
				f.files[key] = headers[0]
			}
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		for key, vals := range r.PostForm {
			if len(vals) > 0 {
				f.values[key] = vals[0]
			}
		}
	default:
		if err := f.decodeJSON(r.Body); err != nil {
			return nil, bodyError(err)
		}
	}
	return f, nil
}

func (f *Form) decodeJSON(body io.Reader) error {
	var raw map[string]interface{}
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	for key, v := range raw {
		switch val := v.(type) {
		case nil:
		case string:
			f.values[key] = val
		case bool:
			f.values[key] = strconv.FormatBool(val)
		case json.Number:
			f.values[key] = val.String()
		default:
			return fmt.Errorf("field %q must be a scalar", key)
		}
	}
	return nil
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return ErrBodyTooLarge
	}
	return err
}

func (f *Form) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// String returns nil when the field is absent.
func (f *Form) String(key string) *string {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	return &v
}

// Bool accepts the spellings HTML forms and JS clients send: true/false, 1/0, on/off.
func (f *Form) Bool(key string) (*bool, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	var b bool
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		b = true
	case "0", "false", "off", "no", "":
		b = false
	default:
		return nil, fmt.Errorf("field %q must be a boolean", key)
	}
	return &b, nil
}

func (f *Form) Int(key string) (*int, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, fmt.Errorf("field %q must be an integer", key)
	}
	return &i, nil
}

// File opens the uploaded file part named key, or returns nil when absent.
// Opened files are closed by Close.
func (f *Form) File(key string) (*upload.File, error) {
	header, ok := f.files[key]
	if !ok {
		return nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	f.opened = append(f.opened, file)
	return &upload.File{
		Reader: file,
		Name:   header.Filename,
		Size:   header.Size,
	}, nil
}

func (f *Form) Close() error {
	var errs []error
	for _, file := range f.opened {
		errs = append(errs, file.Close())
	}
	f.opened = nil
	if f.multipart != nil {
		errs = append(errs, f.multipart.RemoveAll())
	}
	return errors.Join(errs...)
}

// Optional returns nil when the field is absent or blank.
func (f *Form) Optional(key string) *string {
	v, ok := f.values[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// Flag reads a boolean field, recording a parse failure in errs.
func (f *Form) Flag(key string, errs validation.Errors) *bool {
	b, err := f.Bool(key)
	if err != nil {
		errs[key] = "boolean"
		return nil
	}
	return b
}

// Integer reads an integer field, recording a parse failure in errs.
func (f *Form) Integer(key string, errs validation.Errors) *int {
	i, err := f.Int(key)
	if err != nil {
		errs[key] = "integer"
		return nil
	}
	return i
}

// Upload opens the file part key, recording a failure in errs.
func (f *Form) Upload(key string, errs validation.Errors) *upload.File {
	file, err := f.File(key)
	if err != nil {
		errs[key] = "uploaded"
		return nil
	}
	return file
}
