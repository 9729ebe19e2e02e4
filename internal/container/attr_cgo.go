package container

// #cgo LDFLAGS: -lhdf5
// #include <stdlib.h>
// #include <hdf5.h>
//
// static hid_t vlen_string_type(void) {
//     hid_t t = H5Tcopy(H5T_C_S1);
//     if (t < 0) {
//         return t;
//     }
//     if (H5Tset_size(t, H5T_VARIABLE) < 0) {
//         H5Tclose(t);
//         return -1;
//     }
//     return t;
// }
import "C"

import (
	"fmt"
	"unsafe"
)

func attributeExists(loc int64, name string) (bool, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	rc := C.H5Aexists(C.hid_t(loc), cname)
	if rc < 0 {
		return false, fmt.Errorf("checking attribute %q", name)
	}
	return rc > 0, nil
}

func deleteAttribute(loc int64, name string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	if rc := C.H5Adelete(C.hid_t(loc), cname); rc < 0 {
		return fmt.Errorf("deleting attribute %q", name)
	}
	return nil
}

// writeString writes s to a scalar variable-length string attribute.
func writeString(attr int64, s string) error {
	t := C.vlen_string_type()
	if t < 0 {
		return fmt.Errorf("creating string type")
	}
	defer C.H5Tclose(t)

	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))

	if rc := C.H5Awrite(C.hid_t(attr), t, unsafe.Pointer(&cs)); rc < 0 {
		return fmt.Errorf("H5Awrite failed")
	}
	return nil
}

// readString reads a scalar variable-length string attribute.
func readString(attr int64) (string, error) {
	t := C.vlen_string_type()
	if t < 0 {
		return "", fmt.Errorf("creating string type")
	}
	defer C.H5Tclose(t)

	var cs *C.char
	if rc := C.H5Aread(C.hid_t(attr), t, unsafe.Pointer(&cs)); rc < 0 {
		return "", fmt.Errorf("H5Aread failed")
	}
	if cs == nil {
		return "", nil
	}
	defer C.H5free_memory(unsafe.Pointer(cs))
	return C.GoString(cs), nil
}
